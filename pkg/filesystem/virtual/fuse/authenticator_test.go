//go:build darwin || linux
// +build darwin linux

package fuse_test

import (
	"context"
	"testing"

	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual/fuse"
	"github.com/buildbarn/bb-storage/pkg/auth"
	go_fuse "github.com/hanwen/go-fuse/v2/fuse"
	"github.com/jmespath/go-jmespath"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var testCaller = go_fuse.Caller{
	Owner: go_fuse.Owner{
		Uid: 1000,
		Gid: 100,
	},
	Pid: 10847,
}

func TestInHeaderAuthenticator(t *testing.T) {
	authenticator := fuse.NewInHeaderAuthenticator(jmespath.MustCompile("{\"public\": @}"))

	ctxWithMetadata, s := authenticator.Authenticate(context.Background(), &testCaller)
	require.Equal(t, go_fuse.OK, s)
	require.Equal(t, map[string]any{
		"public": map[string]any{
			"uid": 1000.0,
			"gid": 100.0,
			"pid": 10847.0,
		},
	}, auth.AuthenticationMetadataFromContext(ctxWithMetadata).GetRaw())
}

func TestNewAuthenticatorFromExpression(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		authenticator, err := fuse.NewAuthenticatorFromExpression("")
		require.NoError(t, err)
		require.Equal(t, fuse.AllowAuthenticator, authenticator)

		ctx := context.Background()
		ctxWithMetadata, s := authenticator.Authenticate(ctx, &testCaller)
		require.Equal(t, go_fuse.OK, s)
		require.Equal(t, ctx, ctxWithMetadata)
	})

	t.Run("InvalidExpression", func(t *testing.T) {
		_, err := fuse.NewAuthenticatorFromExpression("{{{")
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("Valid", func(t *testing.T) {
		authenticator, err := fuse.NewAuthenticatorFromExpression("{\"public\": {\"user\": uid}}")
		require.NoError(t, err)

		ctxWithMetadata, s := authenticator.Authenticate(context.Background(), &testCaller)
		require.Equal(t, go_fuse.OK, s)
		require.Equal(t, map[string]any{
			"public": map[string]any{
				"user": 1000.0,
			},
		}, auth.AuthenticationMetadataFromContext(ctxWithMetadata).GetRaw())
	})
}

func TestAllowRootAuthenticator(t *testing.T) {
	authenticator := fuse.NewAllowRootAuthenticator(fuse.AllowAuthenticator, 1000)
	ctx := context.Background()

	t.Run("Owner", func(t *testing.T) {
		_, s := authenticator.Authenticate(ctx, &testCaller)
		require.Equal(t, go_fuse.OK, s)
	})

	t.Run("Root", func(t *testing.T) {
		_, s := authenticator.Authenticate(ctx, &go_fuse.Caller{Pid: 1})
		require.Equal(t, go_fuse.OK, s)
	})

	t.Run("OtherUser", func(t *testing.T) {
		_, s := authenticator.Authenticate(ctx, &go_fuse.Caller{
			Owner: go_fuse.Owner{
				Uid: 1001,
				Gid: 100,
			},
			Pid: 10848,
		})
		require.Equal(t, go_fuse.EACCES, s)
	})
}
