package enrich

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

// HostnameFunc looks up the local machine's network hostname.
type HostnameFunc func() (string, error)

// IDFunc generates a unique, time-sortable instance identifier.
type IDFunc func() (string, error)

// Identity memoizes the process-wide values stamped onto records. Each value
// is resolved at most once, on first use.
type Identity struct {
	lookupHostname HostnameFunc
	generateID     IDFunc

	hostOnce sync.Once
	hostname string
	hostErr  error

	idOnce sync.Once
	id     string
	idErr  error
}

// NewIdentity builds an Identity. Nil collaborators fall back to os.Hostname
// and NewInstanceID.
func NewIdentity(hostname HostnameFunc, id IDFunc) *Identity {
	if hostname == nil {
		hostname = os.Hostname
	}
	if id == nil {
		id = NewInstanceID
	}
	return &Identity{lookupHostname: hostname, generateID: id}
}

// Hostname returns the memoized hostname.
func (i *Identity) Hostname() (string, error) {
	i.hostOnce.Do(func() {
		i.hostname, i.hostErr = i.lookupHostname()
		if i.hostErr != nil {
			i.hostErr = fmt.Errorf("lookup hostname: %w", i.hostErr)
		}
	})
	return i.hostname, i.hostErr
}

// InstanceID returns the memoized instance identifier.
func (i *Identity) InstanceID() (string, error) {
	i.idOnce.Do(func() {
		i.id, i.idErr = i.generateID()
		if i.idErr != nil {
			i.idErr = fmt.Errorf("generate instance id: %w", i.idErr)
		}
	})
	return i.id, i.idErr
}

// NewInstanceID returns a UUIDv7, which sorts by creation time.
func NewInstanceID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
