// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookup through wrapped chains

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrArtifactNotFound,
			message: "mvn:g/a/1.0 not found",
			wantStr: "[ARTIFACT_NOT_FOUND] mvn:g/a/1.0 not found",
		},
		{
			name:    "config_error",
			code:    errors.ErrConfigValid,
			message: "default start level must be positive",
			wantStr: "[CONFIG_INVALID] default start level must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")

	err := errors.Wrapf(cause, errors.ErrManifestSave, "cannot write %s", "etc/startup.properties")
	require.NotNil(t, err)

	assert.Equal(t, "[MANIFEST_SAVE] cannot write etc/startup.properties: permission denied", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.Nil(t, errors.Wrap(nil, errors.ErrFileCopy, "nothing"))
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrCircularDependency, "a -> b -> a")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrCircularDependency, "other")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrArtifactNotFound, "other")))
}

func TestIsErrorCode_WalksChain(t *testing.T) {
	inner := errors.New(errors.ErrCircularDependency, "a -> b -> a")
	outer := errors.Wrap(inner, errors.ErrInternal, "cannot install feature a")
	wrapped := fmt.Errorf("run failed: %w", outer)

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrInternal))
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrCircularDependency))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrManifestLoad))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrInternal))
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrManifestLoad, "cannot read").WithDetail("path", "/tmp/x")

	assert.Equal(t, errors.ErrManifestLoad, errors.GetErrorCode(err))
	assert.Equal(t, "/tmp/x", errors.GetErrorDetails(err)["path"])
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestGetErrorDetails_Chain(t *testing.T) {
	inner := errors.New(errors.ErrCircularDependency, "cycle").WithDetail("cycle", "a -> b -> a").WithDetail("path", "inner")
	outer := errors.Wrap(inner, errors.ErrCircularDependency, "cannot install feature a").WithDetail("path", "outer")

	details := errors.GetErrorDetails(fmt.Errorf("run: %w", outer))
	assert.Equal(t, "a -> b -> a", details["cycle"])
	assert.Equal(t, "outer", details["path"])
}
