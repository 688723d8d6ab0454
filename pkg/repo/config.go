package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config stores repository-local settings.
type Config struct {
	User UserConfig `toml:"user"`
}

// UserConfig is the identity recorded on commits.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

const configFileName = "grit.toml"

func (r *Repo) configPath() string {
	return filepath.Join(r.GitDir, configFileName)
}

// ReadConfig reads .git/grit.toml. A missing file returns an empty config.
func (r *Repo) ReadConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(r.configPath(), &cfg); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}

// WriteConfig atomically writes .git/grit.toml via temp + rename.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}

	tmp, err := os.CreateTemp(r.GitDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

// CommitterIdentity resolves the identity used for new commits: the
// [user] table when configured, else $USER with a placeholder address,
// else "unknown".
func (r *Repo) CommitterIdentity() (Identity, error) {
	cfg, err := r.ReadConfig()
	if err != nil {
		return Identity{}, err
	}
	id := Identity{Name: cfg.User.Name, Email: cfg.User.Email}
	if id.Name == "" {
		id.Name = os.Getenv("USER")
		if id.Name == "" {
			id.Name = "unknown"
		}
	}
	if id.Email == "" {
		id.Email = id.Name + "@localhost"
	}
	return id, nil
}
