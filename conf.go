package spap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the binaries need at startup.
type Config struct {
	DataPath    string
	LogPath     string
	LogLevel    string
	TimeFormat  string
	WeightsPath string
	Autosave    bool
}

const (
	DefaultLogLevel   = "WARN"
	DefaultTimeFormat = "15:04"

	envPrefix = "spap"
)

var (
	userHome, _     = os.UserHomeDir()
	DefaultDataPath = filepath.Join(userHome, ".spap", "spap.json")
	DefaultLogPath  = filepath.Join(userHome, ".spap", "spap.log")
)

// LoadConfig resolves configuration from the environment, the conf file and
// built-in defaults, in that order. A default conf file is written on first
// run so users have something to edit.
func LoadConfig() Config {
	v := viper.New()
	v.SetDefault("data_path", DefaultDataPath)
	v.SetDefault("log_path", DefaultLogPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("time_format", DefaultTimeFormat)
	v.SetDefault("weights_path", filepath.Join(confDir(), "weights.yaml"))
	v.SetDefault("autosave", true)

	// Load the conf file into the environment. Real environment variables
	// win because godotenv never overrides an existing one.
	confFile := filepath.Join(confDir(), "spap.conf")
	if _, err := os.Stat(confFile); err != nil {
		writeDefaultConf(confFile)
	}
	if err := godotenv.Load(confFile); err != nil {
		panic(err)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	conf := Config{
		DataPath:    v.GetString("data_path"),
		LogPath:     v.GetString("log_path"),
		LogLevel:    v.GetString("log_level"),
		TimeFormat:  v.GetString("time_format"),
		WeightsPath: v.GetString("weights_path"),
		Autosave:    v.GetBool("autosave"),
	}

	if v.GetBool("dev_mode") {
		fmt.Println("Dev mode is on!")
		conf.LogLevel = "DEBUG"
		conf.DataPath = filepath.Join(os.TempDir(), "spap-dev.json")
	}

	return conf
}

func confDir() string {
	cfgDir, _ := os.UserConfigDir()
	return filepath.Join(cfgDir, "spap")
}

func writeDefaultConf(confFile string) {
	if err := os.MkdirAll(filepath.Dir(confFile), 0o744); err != nil {
		panic(err)
	}
	lines := []string{
		"SPAP_DATA_PATH=" + DefaultDataPath,
		"SPAP_LOG_PATH=" + DefaultLogPath,
		"SPAP_LOG_LEVEL=" + DefaultLogLevel,
		"SPAP_TIME_FORMAT=" + DefaultTimeFormat,
		"SPAP_AUTOSAVE=true",
	}
	if err := os.WriteFile(confFile, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		panic(err)
	}
}
