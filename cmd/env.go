package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Tiliavir/dietwatch/internal/api"
	"github.com/Tiliavir/dietwatch/internal/config"
	"github.com/Tiliavir/dietwatch/internal/i18n"
	"github.com/Tiliavir/dietwatch/internal/model"
	"github.com/Tiliavir/dietwatch/internal/storage"
)

// env is the resolved runtime setup shared by all commands.
type env struct {
	cfg     config.Config
	phrases i18n.Phrases
	now     time.Time
	cache   string
	logger  *slog.Logger
}

// loadEnv reads the config and applies global flags. Failures exit with code 2.
func loadEnv() *env {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if flagLocale != "" {
		cfg.Display.Locale = flagLocale
	}
	if flagTimezone != "" {
		cfg.Display.Timezone = flagTimezone
	}
	loc, err := cfg.Display.Location()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Zone-less ISO dates from the backend are read in time.Local.
	time.Local = loc

	cache, err := storage.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return &env{
		cfg:     cfg,
		phrases: i18n.ForLocale(cfg.Display.Locale),
		now:     time.Now().In(loc),
		cache:   cache,
		logger:  logger,
	}
}

// client builds the backend client from the config.
func (e *env) client(ctx context.Context) (*api.Client, error) {
	tokenFile, err := config.TokenFile()
	if err != nil {
		tokenFile = ""
	}
	return api.NewClient(ctx, api.Options{
		BaseURL:      e.cfg.API.BaseURL,
		Token:        e.cfg.API.Token,
		ClientID:     e.cfg.API.ClientID,
		ClientSecret: e.cfg.API.ClientSecret,
		TokenURL:     e.cfg.API.TokenURL,
		TokenFile:    tokenFile,
		Logger:       e.logger,
	})
}

// diets returns the diets of userID, or of every user when userID is empty.
func (e *env) diets(ctx context.Context, userID string) ([]model.Diet, error) {
	if flagOffline {
		if userID == "" {
			return storage.LoadAll(e.cache)
		}
		uf, err := storage.LoadUser(e.cache, userID)
		if err != nil {
			return nil, err
		}
		return uf.Diets, nil
	}
	c, err := e.client(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListDiets(ctx, api.ListOptions{UserID: userID})
}

// diet returns one diet together with all diets of its user, which the
// continuity check needs. found is false if the diet does not exist.
func (e *env) diet(ctx context.Context, id string) (d model.Diet, siblings []model.Diet, found bool, err error) {
	if flagOffline {
		cached, err := storage.FindDiet(e.cache, id)
		if err != nil || cached == nil {
			return model.Diet{}, nil, false, err
		}
		d = *cached
	} else {
		c, err := e.client(ctx)
		if err != nil {
			return model.Diet{}, nil, false, err
		}
		d, err = c.GetDiet(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return model.Diet{}, nil, false, nil
			}
			return model.Diet{}, nil, false, err
		}
		if err := storage.UpsertDiet(e.cache, d); err != nil {
			e.logger.Warn("could not refresh cached diet", "diet", d.ID, "err", err)
		}
	}
	siblings, err = e.diets(ctx, d.UserID)
	if err != nil {
		return model.Diet{}, nil, false, err
	}
	return d, siblings, true, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, api.ErrNotFound)
}
