//go:build darwin || linux
// +build darwin linux

package configuration

import (
	"context"
	"log"
	"os"

	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual/fuse"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/writeback"
	"github.com/buildbarn/bb-storage/pkg/clock"
	"github.com/buildbarn/bb-storage/pkg/program"
	"github.com/buildbarn/bb-storage/pkg/util"
	go_fuse "github.com/hanwen/go-fuse/v2/fuse"
)

func (m *fuseMount) Expose(terminationGroup program.Group, namespace *virtual.Namespace, createdLeaf virtual.Leaf, sink writeback.Sink) error {
	authenticator, err := fuse.NewAuthenticatorFromExpression(m.configuration.InHeaderAuthenticationMetadataJmespathExpression)
	if err != nil {
		return err
	}

	// The kernel has no notion of permitting access to the super
	// user only. Permit access to everyone and filter out other
	// users while processing requests.
	allowOther := m.configuration.AllowOther
	if m.configuration.AllowRoot && !allowOther {
		allowOther = true
		authenticator = fuse.NewAllowRootAuthenticator(authenticator, uint32(os.Getuid()))
	}

	// Launch the FUSE server.
	mountPath := m.configuration.MountPath
	removeStaleMounts(mountPath)
	server, err := go_fuse.NewServer(
		fuse.NewMetricsRawFileSystem(
			fuse.NewDefaultAttributesInjectingRawFileSystem(
				fuse.NewSimpleRawFileSystem(
					namespace,
					createdLeaf,
					sink,
					authenticator),
				m.configuration.EntryValidity,
				m.configuration.AttributeValidity),
			clock.SystemClock),
		mountPath,
		&go_fuse.MountOptions{
			// The name isn't strictly necessary, but is
			// filled in to prevent runc from crashing with
			// this error:
			// https://github.com/opencontainers/runc/blob/v1.0.0-rc10/libcontainer/mount/mount_linux.go#L69
			FsName:      m.configuration.FSName,
			AllowOther:  allowOther,
			DirectMount: m.configuration.DirectMount,
			Debug:       m.configuration.Debug,
			// Directory listings never need to be combined
			// with lookups, as the namespace is tiny.
			DisableReadDirPlus: true,
		})
	if err != nil {
		return util.StatusWrapf(err, "Failed to create FUSE server for %#v", mountPath)
	}
	go server.Serve()
	if err := server.WaitMount(); err != nil {
		return util.StatusWrapf(err, "Failed to wait for FUSE mount %#v to become available", mountPath)
	}
	log.Printf("Mounted %#v at %#v", m.configuration.FSName, mountPath)

	terminationGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		<-ctx.Done()
		if !m.configuration.AutoUnmount {
			log.Printf("Leaving %#v mounted, as automatic unmounting is disabled", mountPath)
			return nil
		}
		if err := server.Unmount(); err != nil {
			return util.StatusWrapf(err, "Failed to unmount %#v", mountPath)
		}
		return nil
	})
	return nil
}
