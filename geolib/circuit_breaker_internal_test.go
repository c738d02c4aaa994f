package geolib

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CircuitBreakerTestSuite struct {
	suite.Suite

	cb        *circuitBreaker
	ctx       context.Context
	ctxCancel context.CancelFunc
}

func (suite *CircuitBreakerTestSuite) SetupTest() {
	suite.ctx, suite.ctxCancel = context.WithCancel(context.Background())
	suite.cb = newCircuitBreaker(2, 200*time.Millisecond, 500*time.Millisecond)
}

func (suite *CircuitBreakerTestSuite) TearDownTest() {
	suite.ctxCancel()

	suite.cb.lock <- struct{}{}

	suite.cb.stopTimer(&suite.cb.resetFailuresTimer)
	suite.cb.stopTimer(&suite.cb.halfOpenTimer)
}

func (suite *CircuitBreakerTestSuite) CallbackOk(_ context.Context) (*http.Response, error) {
	rec := httptest.NewRecorder()

	rec.WriteHeader(http.StatusCreated)

	return rec.Result(), nil
}

func (suite *CircuitBreakerTestSuite) CallbackErr(_ context.Context) (*http.Response, error) {
	return nil, io.EOF
}

func (suite *CircuitBreakerTestSuite) State() uint32 {
	return atomic.LoadUint32(&suite.cb.state)
}

func (suite *CircuitBreakerTestSuite) Open() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
}

func (suite *CircuitBreakerTestSuite) TestOk() {
	resp, err := suite.cb.Do(suite.ctx, suite.CallbackOk)

	suite.NoError(err)
	suite.Equal(http.StatusCreated, resp.StatusCode)
	suite.EqualValues(circuitBreakerStateClosed, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestSomeFailuresButStillClosed() {
	_, err := suite.cb.Do(suite.ctx, suite.CallbackErr)

	suite.ErrorIs(err, io.EOF)
	suite.EqualValues(1, suite.cb.failures)
	suite.EqualValues(circuitBreakerStateClosed, suite.State())

	_, err = suite.cb.Do(suite.ctx, suite.CallbackErr)

	suite.Error(err)
	suite.EqualValues(2, suite.cb.failures)
	suite.EqualValues(circuitBreakerStateClosed, suite.State())

	_, err = suite.cb.Do(suite.ctx, suite.CallbackErr)

	suite.Error(err)
	suite.EqualValues(0, suite.cb.failures)
	suite.EqualValues(circuitBreakerStateOpened, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestSuccessResetsFailures() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	_, err := suite.cb.Do(suite.ctx, suite.CallbackOk)

	suite.NoError(err)
	suite.EqualValues(0, suite.cb.failures)
	suite.EqualValues(circuitBreakerStateClosed, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestClosedFailureReset() {
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck
	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	time.Sleep(time.Second)

	suite.cb.lock <- struct{}{}
	suite.EqualValues(0, suite.cb.failures)
	suite.cb.release()
	suite.EqualValues(circuitBreakerStateClosed, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestOpenedExecute() {
	suite.Open()

	_, err := suite.cb.Do(suite.ctx, suite.CallbackOk)

	suite.ErrorIs(err, ErrCircuitBreakerOpened)
	suite.EqualValues(circuitBreakerStateOpened, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestHalfOpened() {
	suite.Open()

	time.Sleep(700 * time.Millisecond)

	suite.EqualValues(circuitBreakerStateHalfOpened, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestHalfOpenedErr() {
	suite.Open()

	time.Sleep(700 * time.Millisecond)

	suite.cb.Do(suite.ctx, suite.CallbackErr) // nolint: errcheck

	suite.EqualValues(circuitBreakerStateOpened, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestHalfOpenedOk() {
	suite.Open()

	time.Sleep(700 * time.Millisecond)

	_, err := suite.cb.Do(suite.ctx, suite.CallbackOk)

	suite.NoError(err)
	suite.EqualValues(circuitBreakerStateClosed, suite.State())
}

func (suite *CircuitBreakerTestSuite) TestCheckConcurrentExecutionInHalfOpened() {
	suite.Open()

	time.Sleep(700 * time.Millisecond)

	go suite.cb.Do(suite.ctx, func(_ context.Context) (*http.Response, error) { // nolint: errcheck
		time.Sleep(500 * time.Millisecond)

		return nil, nil
	})

	time.Sleep(10 * time.Millisecond)

	_, err := suite.cb.Do(suite.ctx, suite.CallbackOk)

	suite.ErrorIs(err, ErrCircuitBreakerOpened)
	time.Sleep(time.Second)
	suite.EqualValues(circuitBreakerStateClosed, suite.State())
}

func TestCircuitBreaker(t *testing.T) {
	suite.Run(t, &CircuitBreakerTestSuite{})
}
