package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	errTableFileIsDir = errors.New("table file is dir")
)

type entry struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

type Data struct {
	Sessions map[string]entry `json:"sessions"`
}

// JSONStore keeps sessions in memory and persists them to a JSON file, so
// logins survive a restart during local development.
type JSONStore struct {
	path string
	log  *zap.Logger
	now  func() time.Time

	mu   sync.Mutex
	data *Data
}

func NewJSON(path string, log *zap.Logger) *JSONStore {
	r := &JSONStore{
		path: path,
		log:  log,
		now:  time.Now,
		data: &Data{Sessions: map[string]entry{}},
	}

	err := r.readfile()
	if err != nil {
		// only log, data will be empty and will overwrite when
		// the service is stopped
		r.log.Warn("failed reading json session file", zap.Error(err))
	}
	if r.data.Sessions == nil {
		r.data.Sessions = map[string]entry{}
	}

	return r
}

func (r *JSONStore) stop(_ context.Context) error {
	return r.writefile()
}

func (r *JSONStore) readfile() error {
	finfo, err := os.Stat(r.path)
	if err != nil {
		return err
	}

	if finfo.IsDir() {
		return errTableFileIsDir
	}

	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(&r.data)
}

func (r *JSONStore) writefile() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for token, e := range r.data.Sessions {
		if !now.Before(e.Expiry) {
			delete(r.data.Sessions, token)
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.path, b, 0o600)
}

func (r *JSONStore) Find(token string) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.data.Sessions[token]
	if !ok {
		return nil, false, nil
	}
	if !r.now().Before(e.Expiry) {
		delete(r.data.Sessions, token)
		return nil, false, nil
	}

	return e.Data, true, nil
}

func (r *JSONStore) Commit(token string, b []byte, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data.Sessions[token] = entry{Data: b, Expiry: expiry}
	return nil
}

func (r *JSONStore) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data.Sessions, token)
	return nil
}
