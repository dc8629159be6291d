package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/research-commerce-assistant/agent/notes"
	configx "github.com/tanpawarit/research-commerce-assistant/pkg/config"
	qstashx "github.com/tanpawarit/research-commerce-assistant/pkg/qstash"
)

type AppConfig struct {
	notes.Config
}

// noteSink writes notes and forwards them when a publisher is configured.
type noteSink struct {
	writer    *notes.Writer
	publisher *qstashx.Client
}

func newNoteSink() (*noteSink, error) {
	appCfg, err := configx.New[AppConfig]("")
	if err != nil {
		return nil, err
	}
	sink := &noteSink{writer: notes.NewWriter(appCfg.Config)}

	qstashCfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return nil, err
	}
	if qstashCfg.Enabled() {
		client, err := qstashx.NewClient(*qstashCfg)
		if err != nil {
			return nil, err
		}
		sink.publisher = client
	}
	return sink, nil
}

func saveNote(ctx context.Context, w io.Writer, n notes.Note) (string, error) {
	sink, err := newNoteSink()
	if err != nil {
		return "", err
	}
	return sink.save(ctx, w, n)
}

// save writes n and reports the path on w. A failed publish is logged and
// does not fail the command; the note is already on disk.
func (s *noteSink) save(ctx context.Context, w io.Writer, n notes.Note) (string, error) {
	path, err := s.writer.Write(n)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w, "\nNote saved: %s\n", path)
	log.Ctx(ctx).Info().Str("path", path).Msg("note saved")

	if s.publisher == nil {
		return path, nil
	}

	doc, err := s.writer.Read(path)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("note publish skipped")
		return path, nil
	}
	res, err := s.publisher.Publish(ctx, doc, "text/markdown; charset=utf-8", map[string]string{
		"Note-Title": n.Title,
		"Note-Path":  path,
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("note publish failed")
		return path, nil
	}
	log.Ctx(ctx).Info().Str("message_id", res.MessageID).Msg("note published")
	return path, nil
}
