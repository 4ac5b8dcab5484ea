package shoutrrr

import (
	"fmt"

	"github.com/containrrr/shoutrrr"
	"github.com/qdm12/gosettings"
)

type Settings struct {
	// Addresses are shoutrrr service addresses, for example
	// "gotify://gotify.example.com/token". An empty list disables
	// notifications.
	Addresses []string
	// DefaultTitle is set as the notification title when the
	// address does not carry one.
	DefaultTitle string
	// Logger logs errors returned by notification services.
	Logger Erroer
}

type Erroer interface {
	Error(s string)
}

func (s *Settings) setDefaults() {
	s.Addresses = gosettings.DefaultSlice(s.Addresses, []string{})
	if s.DefaultTitle == "" {
		s.DefaultTitle = "updatedns"
	}
	s.Logger = gosettings.DefaultInterface(s.Logger, &noopLogger{})
}

func (s Settings) validate() (err error) {
	_, err = shoutrrr.CreateSender(s.Addresses...)
	if err != nil {
		return fmt.Errorf("shoutrrr addresses: %w", err)
	}
	return nil
}

type noopLogger struct{}

func (l noopLogger) Error(_ string) {}
