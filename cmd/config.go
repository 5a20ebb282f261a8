package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	CommandPrefix    string        `env:"COMMAND_PREFIX,default=!"`
	BotNick          string        `env:"BOT_NICK,default=chatbot"`
	ConsoleNick      string        `env:"CONSOLE_NICK,default=operator"`
	ConsoleTarget    string        `env:"CONSOLE_TARGET,default=#lobby"`
	ChannelTypes     string        `env:"CHANNEL_TYPES,default=#&"`
	NumberOfWorkers  int           `env:"NUMBER_OF_WORKERS,default=4"`
	BufferSize       int           `env:"BUFFER_SIZE,default=64"`
	BadgerFilepath   string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO"`
	LimitInvocations *int          `env:"LIMIT_INVOCATIONS"`
	CensoredWords    string        `env:"CENSORED_WORDS"`
	CharReplacement  string        `env:"CHARACTER_REPLACEMENT,default=*"`
	RestartInterval  time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}

// CensoredList splits CENSORED_WORDS on commas, dropping blanks.
func (c Config) CensoredList() []string {
	return lo.Compact(lo.Map(strings.Split(c.CensoredWords, ","), func(w string, _ int) string {
		return strings.TrimSpace(w)
	}))
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
