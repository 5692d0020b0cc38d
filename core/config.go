package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		Env          string
		SecretKey    string
		RollbarToken string

		Server ServerConfig
		UI     UIConfig
		Demo   DemoConfig
	}

	ServerConfig struct {
		Address            string
		DebugHost          string
		DisableReqLogs     bool
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	// UIConfig holds the timings of the dashboard's transient signals.
	UIConfig struct {
		NoticeTTL     time.Duration
		SubmitDelay   time.Duration
		SignInDelay   time.Duration
		ViewCacheSize int
	}

	// DemoConfig is the only account the sign-in form accepts.
	// PasswordHash wins over Password when both are set.
	DemoConfig struct {
		Email        string
		Password     string
		PasswordHash string
	}
)

func setDefaults(conf *viper.Viper) {
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Masomo")
	conf.SetDefault("build", "develop")
	conf.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.debugHost", ":4000")
	conf.SetDefault("server.disableReqLogs", false)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)

	conf.SetDefault("ui.noticeTTL", 3*time.Second)
	conf.SetDefault("ui.submitDelay", 500*time.Millisecond)
	conf.SetDefault("ui.signInDelay", time.Second)
	conf.SetDefault("ui.viewCacheSize", 64)

	conf.SetDefault("demo.email", "demo@school.com")
	conf.SetDefault("demo.password", "demo123")
	conf.SetDefault("demo.passwordHash", "")
}

// NewConfig loads the configuration from defaults, `config/.env.<env>` (if any) and the environment.
// Environment variables are prefixed with the upper-cased ENV, eg. DEV_UI_NOTICETTL=5s.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		log.Fatalf("config.Unmarshal(): %v", err)
	}
	conf.Env = env
	return conf
}
