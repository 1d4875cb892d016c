package media

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config carries all session parameters explicitly so the workflow can be
// driven without ambient state. Defaults match the conventional two-stage
// bootloader layout: the build tree drops MLO and u-boot.img into build/,
// and the boot ROM expects the same names on a FAT32 partition labelled
// "boot".
type Config struct {
	BuildDir      string
	StageOneImage string
	MainImage     string
	DestStageOne  string
	DestMain      string

	Label string
	Size  string

	SensitiveDevices []string
	SettleTimeout    time.Duration
	ReportPath       string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		BuildDir:      "build",
		StageOneImage: "MLO",
		MainImage:     "u-boot.img",
		DestStageOne:  "MLO",
		DestMain:      "u-boot.img",
		Label:         "boot",
		Size:          "+64M",
		SensitiveDevices: []string{
			"/dev/sda",
			"/dev/hda",
			"/dev/nvme0n1",
			"/dev/vda",
		},
		SettleTimeout: 10 * time.Second,
	}
}

// fileConfig is the TOML representation. Absent fields keep their defaults.
type fileConfig struct {
	BuildDir         string   `toml:"build_dir"`
	StageOneImage    string   `toml:"stage_one_image"`
	MainImage        string   `toml:"main_image"`
	DestStageOne     string   `toml:"dest_stage_one"`
	DestMain         string   `toml:"dest_main"`
	Label            string   `toml:"label"`
	Size             string   `toml:"size"`
	SensitiveDevices []string `toml:"sensitive_devices"`
	SettleTimeout    string   `toml:"settle_timeout"`
	ReportPath       string   `toml:"report"`
}

// LoadConfig returns DefaultConfig overlaid with the values from the given
// TOML file. An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return Config{}, fmt.Errorf("cannot load config %s: %w", path, err)
	}

	if fc.BuildDir != "" {
		cfg.BuildDir = fc.BuildDir
	}
	if fc.StageOneImage != "" {
		cfg.StageOneImage = fc.StageOneImage
	}
	if fc.MainImage != "" {
		cfg.MainImage = fc.MainImage
	}
	if fc.DestStageOne != "" {
		cfg.DestStageOne = fc.DestStageOne
	}
	if fc.DestMain != "" {
		cfg.DestMain = fc.DestMain
	}
	if fc.Label != "" {
		cfg.Label = fc.Label
	}
	if fc.Size != "" {
		cfg.Size = fc.Size
	}
	if fc.SensitiveDevices != nil {
		cfg.SensitiveDevices = fc.SensitiveDevices
	}
	if fc.SettleTimeout != "" {
		d, err := time.ParseDuration(fc.SettleTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid settle_timeout in %s: %w", path, err)
		}
		cfg.SettleTimeout = d
	}
	if fc.ReportPath != "" {
		cfg.ReportPath = fc.ReportPath
	}

	return cfg, nil
}
