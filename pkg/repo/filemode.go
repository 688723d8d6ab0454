package repo

import (
	"io/fs"

	"github.com/gritvcs/grit/pkg/object"
)

// modeFromFileInfo maps a file's permission bits to a tree entry mode:
// executable when any execute bit is set, regular otherwise.
func modeFromFileInfo(info fs.FileInfo) uint32 {
	if info.Mode()&0o111 != 0 {
		return object.ModeExecutable
	}
	return object.ModeFile
}
