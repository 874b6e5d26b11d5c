package cmd

type Config struct {
	Listen   string   `mapstructure:"listen"`
	Database Database `mapstructure:"database"`
	Settings Settings `mapstructure:"settings"`
}

type Settings struct {
	BodyLimit uint `mapstructure:"bodylimit"`
}

type Database struct {
	Type DatabaseType `mapstructure:"type"`
	URI  string       `mapstructure:"uri"`
}

type DatabaseType string

const (
	PostgreSQL DatabaseType = "postgresql"
	SQLite     DatabaseType = "sqlite"
)
