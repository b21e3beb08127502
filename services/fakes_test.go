package services

import (
	"context"
	"sync"
	"time"

	"dbconnmanager/models"
	"dbconnmanager/services/credential"
	"dbconnmanager/services/dbclient"

	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/gorm"
)

type statusWrite struct {
	ID      uint
	Status  string
	Message string
	At      time.Time
}

type fakeRepo struct {
	mu           sync.Mutex
	records      map[uint]*models.DBConnection
	nextID       uint
	statusWrites []statusWrite
	getErr       error
}

func newFakeRepo(recs ...models.DBConnection) *fakeRepo {
	r := &fakeRepo{records: map[uint]*models.DBConnection{}, nextID: 1}
	for i := range recs {
		rec := recs[i]
		r.records[rec.ID] = &rec
		if rec.ID >= r.nextID {
			r.nextID = rec.ID + 1
		}
	}
	return r
}

func (r *fakeRepo) GetByID(_ *gorm.DB, id uint) (*models.DBConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRepo) GetAll(_ *gorm.DB) ([]models.DBConnection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.DBConnection{}
	for id := uint(1); id < r.nextID; id++ {
		if rec, ok := r.records[id]; ok {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) Create(_ *gorm.DB, conn *models.DBConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn.ID = r.nextID
	r.nextID++
	if conn.PostStatus == "" {
		conn.PostStatus = models.PostStatusDraft
	}
	cp := *conn
	r.records[conn.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateDetails(_ *gorm.DB, conn *models.DBConnection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[conn.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.Title = conn.Title
	rec.PostStatus = conn.PostStatus
	rec.DBType = conn.DBType
	rec.Host = conn.Host
	rec.Port = conn.Port
	rec.Username = conn.Username
	rec.Password = conn.Password
	rec.Database = conn.Database
	rec.Options = conn.Options
	return nil
}

func (r *fakeRepo) UpdateStatus(_ *gorm.DB, id uint, status, message string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusWrites = append(r.statusWrites, statusWrite{ID: id, Status: status, Message: message, At: at})
	if rec, ok := r.records[id]; ok {
		rec.Status = status
		rec.StatusMessage = message
		rec.StatusUpdated = &at
	}
	return nil
}

func (r *fakeRepo) DeleteByID(_ *gorm.DB, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

type fakeMySQL struct {
	pingErr  error
	result   *dbclient.ResultSet
	queryErr error

	pings   []credential.Credentials
	queries []string
}

func (f *fakeMySQL) Ping(_ context.Context, creds credential.Credentials) error {
	f.pings = append(f.pings, creds)
	return f.pingErr
}

func (f *fakeMySQL) Query(_ context.Context, _ credential.Credentials, query string) (*dbclient.ResultSet, error) {
	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if f.result == nil {
		return &dbclient.ResultSet{}, nil
	}
	return f.result, nil
}

type fakeMongo struct {
	unavailable bool
	pingErr     error
	docs        []bson.Raw
	findErr     error

	pings int
	finds []dbclient.FindRequest
}

func (f *fakeMongo) Available() bool {
	return !f.unavailable
}

func (f *fakeMongo) Ping(context.Context, credential.Credentials) error {
	f.pings++
	return f.pingErr
}

func (f *fakeMongo) Find(_ context.Context, _ credential.Credentials, req dbclient.FindRequest) ([]bson.Raw, error) {
	f.finds = append(f.finds, req)
	return f.docs, f.findErr
}
