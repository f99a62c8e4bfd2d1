package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/repository"
)

// =========================================================================
// FAKES AND HELPERS
// =========================================================================

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	byEmail map[string]*model.User
	nextID  int
	creates int

	// set to a non-nil error to simulate a database failure
	createErr error
	getErr    error
	// beforeCreate runs inside Create, before the duplicate check; tests use
	// it to sneak in a competing registration.
	beforeCreate func()
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return apperror.Conflict("user", user.Email)
	}
	f.nextID++
	f.creates++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFoundBy("user", "email", email)
	}
	out := *u
	return &out, nil
}

// fakePlayerRepo is an in-memory repository.PlayerRepository.
type fakePlayerRepo struct {
	players   []model.Player
	createErr error
}

func (f *fakePlayerRepo) Create(_ context.Context, p *model.Player) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("player-%d", len(f.players)+1)
	f.players = append(f.players, *p)
	return nil
}

func (f *fakePlayerRepo) List(_ context.Context) ([]model.Player, error) {
	return append([]model.Player{}, f.players...), nil
}

// fakeDocRepo is an in-memory repository.DocumentRepository.
type fakeDocRepo struct {
	colls     map[string][]model.Document
	insertErr error
	findErr   error
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{colls: make(map[string][]model.Document)}
}

func (f *fakeDocRepo) Insert(_ context.Context, coll string, doc model.Document) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	stored := doc.Clone()
	id := fmt.Sprintf("%s-%d", coll, len(f.colls[coll])+1)
	stored[model.IDField] = id
	f.colls[coll] = append(f.colls[coll], stored)
	return id, nil
}

func (f *fakeDocRepo) Find(_ context.Context, coll string, filter repository.Filter) ([]model.Document, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := []model.Document{}
	for _, d := range f.colls[coll] {
		if filter.IsZero() || d[filter.Field] == filter.Value {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDocRepo) FindLatest(_ context.Context, coll string, limit int) ([]model.Document, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := []model.Document{}
	docs := f.colls[coll]
	for i := len(docs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, docs[i])
	}
	return out, nil
}

func (f *fakeDocRepo) FindByID(_ context.Context, coll, id string) (model.Document, error) {
	for _, d := range f.colls[coll] {
		if d.ID() == id {
			return d, nil
		}
	}
	return nil, apperror.NotFound(coll, id)
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
