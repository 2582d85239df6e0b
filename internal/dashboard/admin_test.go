package dashboard

import (
	"context"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayawalid/smartexplorers/internal/adapter/api"
	"github.com/hayawalid/smartexplorers/internal/domain"
	"github.com/hayawalid/smartexplorers/internal/screen"
)

type fakeAdmin struct {
	calls    int32
	resolved bool
	statsErr error
	release  chan struct{}
}

func (f *fakeAdmin) wait() {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
}

func (f *fakeAdmin) Stats(ctx context.Context, opts ...api.CallOption) (domain.Payload, error) {
	f.wait()
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return domain.Payload{"travelers": float64(12)}, nil
}

func (f *fakeAdmin) ProviderRequests(ctx context.Context, status domain.ProviderRequestStatus, opts ...api.CallOption) ([]domain.Payload, error) {
	f.wait()
	return []domain.Payload{{"request_id": "p1", "status": string(status)}}, nil
}

func (f *fakeAdmin) Reports(ctx context.Context, opts ...api.CallOption) ([]domain.Payload, error) {
	f.wait()
	return []domain.Payload{{"report_id": "r1"}, {"report_id": "r2"}}, nil
}

func (f *fakeAdmin) ResolveReport(ctx context.Context, reportID string, opts ...api.CallOption) (bool, error) {
	return f.resolved, nil
}

func TestLoadFillsAllSections(t *testing.T) {
	scope := screen.New(context.Background())
	defer scope.Dispose()
	fake := &fakeAdmin{}
	d := NewAdmin(fake, scope)

	require.NoError(t, d.Load(scope.Context()))

	st := d.State()
	assert.Equal(t, float64(12), st.Stats["travelers"])
	require.Len(t, st.ProviderRequests, 1)
	assert.Equal(t, "pending", st.ProviderRequests[0]["status"])
	assert.Len(t, st.Reports, 2)
	assert.False(t, st.LoadedAt.IsZero())
	assert.Equal(t, int32(3), atomic.LoadInt32(&fake.calls))
}

func TestLoadRunsConcurrently(t *testing.T) {
	scope := screen.New(context.Background())
	defer scope.Dispose()
	fake := &fakeAdmin{release: make(chan struct{})}
	d := NewAdmin(fake, scope)

	errc := make(chan error, 1)
	go func() { errc <- d.Load(scope.Context()) }()

	// All three calls must be in flight before any of them returns.
	for atomic.LoadInt32(&fake.calls) < 3 {
		runtime.Gosched()
	}
	close(fake.release)
	require.NoError(t, <-errc)
}

func TestLoadAfterDisposeKeepsStateEmpty(t *testing.T) {
	scope := screen.New(context.Background())
	d := NewAdmin(&fakeAdmin{}, scope)
	scope.Dispose()

	require.NoError(t, d.Load(context.Background()))
	st := d.State()
	assert.Nil(t, st.Stats)
	assert.Empty(t, st.Reports)
	assert.True(t, st.LoadedAt.IsZero())
}

func TestLoadReturnsError(t *testing.T) {
	scope := screen.New(context.Background())
	defer scope.Dispose()
	d := NewAdmin(&fakeAdmin{statsErr: context.Canceled}, scope)

	assert.ErrorIs(t, d.Load(scope.Context()), context.Canceled)
}

func TestResolveRemovesReport(t *testing.T) {
	scope := screen.New(context.Background())
	defer scope.Dispose()
	fake := &fakeAdmin{}
	d := NewAdmin(fake, scope)
	require.NoError(t, d.Load(scope.Context()))

	ok, err := d.Resolve(scope.Context(), "r1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, d.State().Reports, 2)

	fake.resolved = true
	ok, err = d.Resolve(scope.Context(), "r1")
	require.NoError(t, err)
	assert.True(t, ok)
	reports := d.State().Reports
	require.Len(t, reports, 1)
	assert.Equal(t, "r2", reports[0].String("report_id"))
}
