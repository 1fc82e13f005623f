package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
)

// DBSettings are read from DB_USER, DB_PASSWORD, DB_HOST, DB_PORT, DB_NAME
// and the optional DB_SSLMODE.
type DBSettings struct {
	User, Password, Host, Port, Name, SSLMode string
}

func DBFromEnv() (DBSettings, error) {
	s := DBSettings{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if s.SSLMode == "" {
		s.SSLMode = "disable"
	}
	if s.Port == "" {
		s.Port = "5432"
	}
	if s.User == "" || s.Host == "" || s.Name == "" {
		return s, errors.New("DB_USER, DB_HOST and DB_NAME must be set")
	}
	return s, nil
}

// ConnString is the key=value form used with lib/pq.
func (s DBSettings) ConnString() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		s.User, s.Password, s.Host, s.Port, s.Name, s.SSLMode)
}

// URL is the postgres:// form used with pgxpool.
func (s DBSettings) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     s.Host + ":" + s.Port,
		Path:     "/" + s.Name,
		RawQuery: "sslmode=" + url.QueryEscape(s.SSLMode),
	}
	return u.String()
}
