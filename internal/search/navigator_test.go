package search

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func searchRequest(rendered *string, text string) Request {
	return OnChange(rendered, "/", url.Values{QueryParam: {text}})
}

func TestBeginReportsInFlightTarget(t *testing.T) {
	n := NewNavigator(NewHistory(nil))
	assert.Equal(t, PhaseIdle, n.State().Phase)

	ticket := n.Begin(context.Background(), searchRequest(nil, "ana"), PhaseLoading)
	state := n.State()
	assert.Equal(t, PhaseLoading, state.Phase)
	assert.True(t, ShowLoading(state))

	require.True(t, n.Complete(ticket, nil))
	assert.Equal(t, IdleNavigation(), n.State())
	assert.False(t, ShowLoading(n.State()))
	assert.Equal(t, "/?query=ana", n.History().Current().String())
}

func TestStaleNavigationIsDropped(t *testing.T) {
	h := NewHistory(nil)
	n := NewNavigator(h)

	first := n.Begin(context.Background(), searchRequest(nil, "a"), PhaseLoading)
	second := n.Begin(context.Background(), searchRequest(nil, "an"), PhaseLoading)

	assert.ErrorIs(t, first.Ctx.Err(), context.Canceled)
	assert.NoError(t, second.Ctx.Err())

	// the second finishes first; the first arrives late and must not win
	require.True(t, n.Complete(second, nil))
	assert.False(t, n.Complete(first, nil))

	assert.Equal(t, []string{"/", "/?query=an"}, h.Entries())
}

func TestFailedLoadDoesNotTouchHistory(t *testing.T) {
	h := NewHistory(nil)
	n := NewNavigator(h)

	ticket := n.Begin(context.Background(), searchRequest(nil, "a"), PhaseLoading)
	require.True(t, n.Complete(ticket, errors.New("store down")))

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, PhaseIdle, n.State().Phase)
}

func TestSubmissionDoesNotCommitHistory(t *testing.T) {
	h := NewHistory(nil)
	n := NewNavigator(h)

	ticket := n.Begin(context.Background(), Request{Location: &url.URL{Path: "/"}, Action: Push}, PhaseSubmitting)
	assert.False(t, ShowLoading(n.State()))
	require.True(t, n.Complete(ticket, nil))
	assert.Equal(t, 1, h.Len())
}

func TestAbandonCancelsInFlight(t *testing.T) {
	n := NewNavigator(NewHistory(nil))
	ticket := n.Begin(context.Background(), searchRequest(nil, "a"), PhaseLoading)

	n.Abandon()

	assert.ErrorIs(t, ticket.Ctx.Err(), context.Canceled)
	assert.False(t, n.Complete(ticket, nil))
	assert.Equal(t, PhaseIdle, n.State().Phase)
}

func TestFetchLatestWinsUnderConcurrency(t *testing.T) {
	h := NewHistory(nil)
	n := NewNavigator(h)

	release := make(chan struct{})
	slow := func(ctx context.Context, u *url.URL) (string, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return u.String(), nil
	}
	fast := func(ctx context.Context, u *url.URL) (string, error) {
		return u.String(), nil
	}

	var wg sync.WaitGroup
	var staleOK bool
	started := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		req := searchRequest(nil, "a")
		ticket := n.Begin(context.Background(), req, PhaseLoading)
		close(started)
		_, err := slow(ticket.Ctx, req.Location)
		staleOK = n.Complete(ticket, err)
	}()

	<-started
	got, current, err := Fetch(context.Background(), n, searchRequest(nil, "an"), fast)
	close(release)
	wg.Wait()

	require.NoError(t, err)
	assert.True(t, current)
	assert.Equal(t, "/?query=an", got)
	assert.False(t, staleOK)
	assert.Equal(t, "/?query=an", h.Current().String())
}

func TestFetchReportsErrors(t *testing.T) {
	n := NewNavigator(NewHistory(nil))
	boom := errors.New("boom")
	_, current, err := Fetch(context.Background(), n, searchRequest(nil, "a"), func(context.Context, *url.URL) (int, error) {
		return 0, boom
	})
	assert.True(t, current)
	assert.ErrorIs(t, err, boom)
}

func TestCompleteWithinDeadline(t *testing.T) {
	n := NewNavigator(NewHistory(nil))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ticket := n.Begin(ctx, searchRequest(nil, "x"), PhaseLoading)
	require.True(t, n.Complete(ticket, nil))
	assert.ErrorIs(t, ticket.Ctx.Err(), context.Canceled)
}
