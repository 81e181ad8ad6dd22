package wizard

import (
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/tsijukebox/jukebox/internal/config"
)

// Setup prompts for the Spotify app credentials and exchange backend,
// starting from the values already in sc, and writes the answers back.
func Setup(sc *config.SpotifyConfig) error {
	clientID := sc.ClientID
	clientSecret := sc.ClientSecret
	exchangeURL := sc.ExchangeURL
	apiKey := sc.APIKey

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Spotify setup").
				Description("Create an app at developer.spotify.com and add\n" +
					sc.Origin + "/settings as a redirect URI."),
			huh.NewInput().
				Title("Client ID").
				Value(&clientID).
				Validate(required("client ID")),
			huh.NewInput().
				Title("Client secret").
				EchoMode(huh.EchoModePassword).
				Value(&clientSecret).
				Validate(required("client secret")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Exchange backend URL").
				Description("Endpoint that performs code exchange and token refresh").
				Value(&exchangeURL).
				Validate(validURL),
			huh.NewInput().
				Title("Backend API key").
				Description("Leave empty if the backend is open").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
		),
	)
	if err := run(form); err != nil {
		return err
	}

	sc.ClientID = strings.TrimSpace(clientID)
	sc.ClientSecret = strings.TrimSpace(clientSecret)
	sc.ExchangeURL = strings.TrimSpace(exchangeURL)
	sc.APIKey = strings.TrimSpace(apiKey)
	return nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func validURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("enter an http(s) URL")
	}
	return nil
}
