package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ghaggin/policy-portal/internal/model"
)

var now = time.Unix(1700000000, 0)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeSessions struct {
	session *model.Session
	cleared int
}

func (f *fakeSessions) Get(context.Context) (*model.Session, error) {
	if f.session == nil {
		return nil, errors.New("session not found")
	}
	return f.session, nil
}

func (f *fakeSessions) ClearToken(context.Context) error {
	f.cleared++
	if f.session != nil {
		f.session.Token = ""
	}
	return nil
}

type call struct {
	Method string
	Bearer string
	Arg    any
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call

	catalog  []model.Policy
	mine     []model.Policy
	takeErr  error
	delErr   error
	listErr  error
	mineErr  error
	createFn func(model.Policy) (*model.Policy, error)
}

func (f *fakeAPI) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) callsTo(method string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) ListPolicies(context.Context) ([]model.Policy, error) {
	f.record(call{Method: "list"})
	return f.catalog, f.listErr
}

func (f *fakeAPI) MyPolicies(_ context.Context, bearer, email string) ([]model.Policy, error) {
	f.record(call{Method: "mine", Bearer: bearer, Arg: email})
	return f.mine, f.mineErr
}

func (f *fakeAPI) TakePolicy(_ context.Context, bearer string, req model.TakeRequest) error {
	f.record(call{Method: "take", Bearer: bearer, Arg: req})
	return f.takeErr
}

func (f *fakeAPI) DeletePolicy(_ context.Context, bearer, id string) error {
	f.record(call{Method: "delete", Bearer: bearer, Arg: id})
	return f.delErr
}

func (f *fakeAPI) CreatePolicy(_ context.Context, bearer string, p model.Policy) (*model.Policy, error) {
	f.record(call{Method: "create", Bearer: bearer, Arg: p})
	if f.createFn != nil {
		return f.createFn(p)
	}
	p.ID = "new"
	return &p, nil
}

func newParams(s *fakeSessions, api *fakeAPI) Params {
	return Params{Sessions: s, API: api, Clock: fixedClock{t: now}}
}

func sessionFor(tok, email string) *fakeSessions {
	return &fakeSessions{session: &model.Session{Token: tok, User: &model.User{Email: email}}}
}
