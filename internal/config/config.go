package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Config interface {
	Init(cmd *cobra.Command) error
	Set()
}

// insecure development fallbacks, warned about at startup
const (
	DefaultAdminToken  = "fallback-admin-token"
	DefaultStreamToken = "fallback-stream-token"
)

type Store struct {
	Backend string `mapstructure:"backend"`
	Prefix  string `mapstructure:"prefix"`
	File    string `mapstructure:"file"`

	RedisAddr     string `mapstructure:"redis-addr"`
	RedisPassword string `mapstructure:"redis-password"`
	RedisDB       int    `mapstructure:"redis-db"`

	PostgresDSN string `mapstructure:"postgres-dsn"`
}

type Session struct {
	CookieName string        `mapstructure:"cookie-name"`
	MaxAge     time.Duration `mapstructure:"max-age"`
}

type Server struct {
	PProf   bool
	Metrics bool

	Cert  string
	Key   string
	Bind  string
	Proxy bool

	// BaseURL is the public origin used when constructing generated
	// links, e.g. https://links.example.com
	BaseURL string

	AdminToken  string
	StreamToken string

	Store   Store
	Session Session
}

func (Server) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().Bool("pprof", false, "enable pprof endpoint available at /debug/pprof")
	if err := viper.BindPFlag("pprof", cmd.PersistentFlags().Lookup("pprof")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("metrics", true, "enable prometheus endpoint available at /metrics")
	if err := viper.BindPFlag("metrics", cmd.PersistentFlags().Lookup("metrics")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("bind", "127.0.0.1:8080", "address/port/socket to serve linkgate")
	if err := viper.BindPFlag("bind", cmd.PersistentFlags().Lookup("bind")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("cert", "", "path to the SSL cert used to secure the linkgate server")
	if err := viper.BindPFlag("cert", cmd.PersistentFlags().Lookup("cert")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("key", "", "path to the SSL key used to secure the linkgate server")
	if err := viper.BindPFlag("key", cmd.PersistentFlags().Lookup("key")); err != nil {
		return err
	}

	cmd.PersistentFlags().Bool("proxy", false, "allow reverse proxies")
	if err := viper.BindPFlag("proxy", cmd.PersistentFlags().Lookup("proxy")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("baseurl", "", "public base URL used in generated links")
	if err := viper.BindPFlag("baseurl", cmd.PersistentFlags().Lookup("baseurl")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("admin-token", "", "secret gating the admin surface")
	if err := viper.BindPFlag("admin-token", cmd.PersistentFlags().Lookup("admin-token")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("stream-token", "", "secret gating download and playback")
	if err := viper.BindPFlag("stream-token", cmd.PersistentFlags().Lookup("stream-token")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("store.backend", "memory", "link store backend (memory, redis, postgres)")
	if err := viper.BindPFlag("store.backend", cmd.PersistentFlags().Lookup("store.backend")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("store.file", "", "JSON persistence path for the memory backend")
	if err := viper.BindPFlag("store.file", cmd.PersistentFlags().Lookup("store.file")); err != nil {
		return err
	}

	return nil
}

func (s *Server) Set() {
	s.PProf = viper.GetBool("pprof")
	s.Metrics = viper.GetBool("metrics")

	s.Cert = viper.GetString("cert")
	s.Key = viper.GetString("key")
	s.Bind = viper.GetString("bind")
	s.Proxy = viper.GetBool("proxy")

	s.BaseURL = viper.GetString("baseurl")
	if s.BaseURL == "" {
		s.BaseURL = "http://" + s.Bind
	}

	s.AdminToken = viper.GetString("admin-token")
	if s.AdminToken == "" {
		s.AdminToken = DefaultAdminToken
		log.Warn().Msg("admin token left at insecure fallback, set LINKGATE_ADMIN_TOKEN in production")
	}

	s.StreamToken = viper.GetString("stream-token")
	if s.StreamToken == "" {
		s.StreamToken = DefaultStreamToken
		log.Warn().Msg("stream token left at insecure fallback, set LINKGATE_STREAM_TOKEN in production")
	}

	//
	// STORE
	//
	if err := viper.UnmarshalKey("store", &s.Store); err != nil {
		panic(err)
	}

	if s.Store.Backend == "" {
		s.Store.Backend = "memory"
	}
	if s.Store.Prefix == "" {
		s.Store.Prefix = "videos/"
	}

	//
	// SESSION
	//
	if err := viper.UnmarshalKey("session", &s.Session); err != nil {
		panic(err)
	}

	if s.Session.CookieName == "" {
		s.Session.CookieName = "linkgate_session"
	}
	if s.Session.MaxAge <= 0 {
		s.Session.MaxAge = 365 * 24 * time.Hour
	}
}
