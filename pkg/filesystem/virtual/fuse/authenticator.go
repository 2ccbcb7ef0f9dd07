//go:build darwin || linux
// +build darwin linux

package fuse

import (
	"context"
	"log"

	"github.com/buildbarn/bb-storage/pkg/auth"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/jmespath/go-jmespath"

	"google.golang.org/grpc/codes"
)

// Authenticator of incoming FUSE requests.
type Authenticator interface {
	Authenticate(ctx context.Context, caller *fuse.Caller) (context.Context, fuse.Status)
}

type allowAuthenticator struct{}

func (allowAuthenticator) Authenticate(ctx context.Context, caller *fuse.Caller) (context.Context, fuse.Status) {
	return ctx, fuse.OK
}

// AllowAuthenticator is an implementation of Authenticator that simply
// permits all incoming requests. No authentication metadata is attached
// to the context.
var AllowAuthenticator Authenticator = allowAuthenticator{}

type inHeaderAuthenticator struct {
	metadataExtractor *jmespath.JMESPath
}

// NewInHeaderAuthenticator creates an Authenticator that obtains
// authentication metadata from an incoming FUSE request by inspecting
// the "fuse_in_header" structure that's provided by the kernel. This
// structure contains the user ID, group ID and process ID of the
// calling process.
//
// Requests are never denied. The metadata is only attached to the
// context, so that it may be logged or inspected by nodes.
func NewInHeaderAuthenticator(metadataExtractor *jmespath.JMESPath) Authenticator {
	return &inHeaderAuthenticator{
		metadataExtractor: metadataExtractor,
	}
}

func (a *inHeaderAuthenticator) Authenticate(ctx context.Context, caller *fuse.Caller) (context.Context, fuse.Status) {
	raw, err := a.metadataExtractor.Search(map[string]any{
		"uid": caller.Uid,
		"gid": caller.Gid,
		"pid": caller.Pid,
	})
	if err != nil {
		log.Print("Failed to perform authentication metadata extraction: ", err)
		return nil, fuse.EIO
	}
	authenticationMetadata, err := auth.NewAuthenticationMetadataFromRaw(raw)
	if err != nil {
		log.Print("Failed to create authentication metadata: ", err)
		return nil, fuse.EIO
	}
	return auth.NewContextWithAuthenticationMetadata(ctx, authenticationMetadata), fuse.OK
}

// NewAuthenticatorFromExpression creates an Authenticator based on an
// optional JMESPath expression. If no expression is provided, all
// requests are permitted without attaching any metadata. Otherwise,
// the expression is used to extract metadata from the caller's
// credentials.
func NewAuthenticatorFromExpression(expression string) (Authenticator, error) {
	if expression == "" {
		return AllowAuthenticator, nil
	}
	metadataExtractor, err := jmespath.Compile(expression)
	if err != nil {
		return nil, util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to compile in-header authentication metadata extraction JMESPath expression")
	}
	return NewInHeaderAuthenticator(metadataExtractor), nil
}

type allowRootAuthenticator struct {
	base        Authenticator
	ownerUserID uint32
}

// NewAllowRootAuthenticator creates a decorator for Authenticator that
// only permits requests issued by the super user and the user that
// owns the mount. Requests from other users are rejected with EACCES.
//
// This can be used to emulate libfuse's "allow_root" mount option,
// which the kernel does not provide natively. The mount needs to be
// created with "allow_other" for this to have any effect.
func NewAllowRootAuthenticator(base Authenticator, ownerUserID uint32) Authenticator {
	return &allowRootAuthenticator{
		base:        base,
		ownerUserID: ownerUserID,
	}
}

func (a *allowRootAuthenticator) Authenticate(ctx context.Context, caller *fuse.Caller) (context.Context, fuse.Status) {
	if caller.Uid != 0 && caller.Uid != a.ownerUserID {
		return nil, fuse.EACCES
	}
	return a.base.Authenticate(ctx, caller)
}
