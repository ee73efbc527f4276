package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunFailedErrorIncludesStatus(t *testing.T) {
	err := &RunFailedError{Status: RunStatusFailed}
	assert.Contains(t, err.Error(), "failed")

	err = &RunFailedError{Status: RunStatusExpired}
	assert.Contains(t, err.Error(), "expired")
}

func TestClassify(t *testing.T) {
	authErr := fmt.Errorf("create run: %w: status 401", ErrAuthFailed)
	assert.Equal(t, ErrorKindAuth, Classify(authErr))

	var protocolErr error = &ProtocolError{StatusCode: 500, Body: "boom"}
	assert.Equal(t, ErrorKindProtocol, Classify(fmt.Errorf("get run: %w", protocolErr)))

	var runErr error = &RunFailedError{Status: RunStatusCancelled}
	assert.Equal(t, ErrorKindRun, Classify(runErr))

	assert.Equal(t, ErrorKindUnknown, Classify(errors.New("something else")))
}

func TestProtocolErrorMessage(t *testing.T) {
	assert.Equal(t, "remote service error: status 503", (&ProtocolError{StatusCode: 503}).Error())
	assert.Equal(t, "remote service error: status 500: oops", (&ProtocolError{StatusCode: 500, Body: "oops"}).Error())
}
