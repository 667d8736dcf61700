package handlers_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/your-org/acs/internal/access"
	"github.com/your-org/acs/internal/api/handlers"
	"github.com/your-org/acs/internal/enroll"
	"github.com/your-org/acs/internal/models"
	"github.com/your-org/acs/internal/storage"
)

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: make(map[string][]byte)}
}

func (f *fakeBlobs) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeBlobs) GetObject(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object not found: " + key)
	}
	return data, nil
}

func (f *fakeBlobs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type testEnv struct {
	store *storage.MemoryStore
	blobs *fakeBlobs
}

// newTestServer wires the handler graph on the in-memory store and returns
// a server whose URL can be hit with a plain http.Client. The route set
// mirrors the production router without auth, CORS, or metrics.
func newTestServer(t *testing.T) (*httptest.Server, *testEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemoryStore()
	blobs := newFakeBlobs()
	accessSvc := access.NewService(store, nil)
	enrollSvc := enroll.NewService(store, blobs)

	userH := handlers.NewUserHandler(store)
	accessH := handlers.NewAccessHandler(accessSvc)
	recordH := handlers.NewRecordHandler(accessSvc)
	enrollH := handlers.NewEnrollHandler(enrollSvc)
	systemH := handlers.NewSystemHandler(nil, nil, nil)

	r := gin.New()
	r.GET("/", systemH.Home)
	r.NoRoute(systemH.NotFound)
	r.GET("/cgi-bin/recordFinder.cgi", recordH.FindText)
	r.POST("/cgi-bin/FaceInfoManager.cgi", enrollH.ManageFaceInfo)
	r.POST("/api/users/register", userH.Register)
	r.GET("/api/users", userH.List)
	r.GET("/api/users/card/:cardNumber", userH.GetByCard)
	r.POST("/api/access/face", accessH.SubmitFace)
	r.POST("/api/access/card", accessH.SubmitCard)
	r.GET("/api/access/logs", accessH.Logs)
	r.GET("/api/access/offline-records", recordH.FindJSON)
	r.POST("/api/face/enroll", enrollH.EnrollDryRun)
	r.GET("/api/face/templates/:userId", enrollH.Templates)
	r.GET("/api/face/photos", enrollH.Photo)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, &testEnv{store: store, blobs: blobs}
}

func seedUser(t *testing.T, store *storage.MemoryStore, name, role, card string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Role: role, PhotoPath: "/photos/" + name + ".jpg"}
	if card != "" {
		u.CardNumber = &card
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}
