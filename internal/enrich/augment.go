// Package enrich stamps host and instance metadata onto structured log records.
package enrich

import (
	"github.com/five82/logpipe/internal/record"
)

// Config toggles the individual augmentation steps.
type Config struct {
	AppendHostname   bool
	AppendInstanceID bool
	ExcludeOrphans   bool
}

// Augmenter rewrites structured lines with the configured context fields.
type Augmenter struct {
	cfg      Config
	identity *Identity
}

// NewAugmenter returns an Augmenter. A nil identity uses the system defaults.
func NewAugmenter(cfg Config, identity *Identity) *Augmenter {
	if identity == nil {
		identity = NewIdentity(nil, nil)
	}
	return &Augmenter{cfg: cfg, identity: identity}
}

// Transform returns the replacement text for line. An empty result means the
// line is dropped. A structured-looking line that fails to decode returns a
// *record.ParseError; there is no safe way to augment it.
func (a *Augmenter) Transform(line string) (string, error) {
	if !record.IsStructured(line) {
		if a.cfg.ExcludeOrphans {
			return "", nil
		}
		return line + "\n", nil
	}

	rec, err := record.Parse(line)
	if err != nil {
		return "", err
	}

	if a.cfg.AppendHostname {
		host, err := a.identity.Hostname()
		if err != nil {
			return "", err
		}
		rec.SetString(record.KeyHostname, host)
	}
	if a.cfg.AppendInstanceID {
		id, err := a.identity.InstanceID()
		if err != nil {
			return "", err
		}
		rec.SetString(record.KeyInstanceID, id)
	}

	buf := rec.AppendJSON(make([]byte, 0, len(line)+64))
	buf = append(buf, '\n')
	return string(buf), nil
}
