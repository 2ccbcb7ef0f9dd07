package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/buildbarn/bb-hello-writeback/pkg/configuration/bb_hello_fs"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/hello"
	virtual_configuration "github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual/configuration"
	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/writeback"
	"github.com/buildbarn/bb-storage/pkg/program"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// bb_hello_fs exposes a FUSE file system containing a single read-only
// file named "hello.txt". Data written into the file system and files
// created inside of it are not stored in the file system itself.
// Instead, they are appended to a file on local storage.

func main() {
	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		flagSet := pflag.NewFlagSet("bb_hello_fs", pflag.ContinueOnError)
		configurationPath := flagSet.String("configuration", "", "Path of a Jsonnet configuration file")
		autoUnmount := flagSet.Bool("auto_unmount", false, "Automatically unmount the file system upon termination")
		allowRoot := flagSet.Bool("allow-root", false, "Permit the super user to access the file system")
		if err := flagSet.Parse(os.Args[1:]); err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}

		applicationConfiguration, err := configuration.GetApplicationConfiguration(*configurationPath)
		if err != nil {
			return util.StatusWrapf(err, "Failed to read configuration from %#v", *configurationPath)
		}
		switch flagSet.NArg() {
		case 0:
		case 1:
			applicationConfiguration.MountPath = flagSet.Arg(0)
		default:
			return status.Error(codes.InvalidArgument, "Usage: bb_hello_fs [--configuration bb_hello_fs.jsonnet] [--auto_unmount] [--allow-root] MOUNT_POINT")
		}
		if *autoUnmount {
			applicationConfiguration.AutoUnmount = true
		}
		if *allowRoot {
			applicationConfiguration.AllowRoot = true
		}
		if err := applicationConfiguration.Validate(); err != nil {
			return err
		}

		// Construct the contents of the file system.
		helloOptions, err := applicationConfiguration.GetHelloOptions()
		if err != nil {
			return err
		}
		namespace, createdLeaf, err := hello.NewNamespace(ctx, helloOptions)
		if err != nil {
			return util.StatusWrap(err, "Failed to create namespace")
		}
		sink := writeback.NewMetricsSink(
			writeback.NewLocalFileSink(
				applicationConfiguration.WritebackDirectoryPath,
				applicationConfiguration.WritebackFileName),
			"Writeback")

		// Expose the file system through FUSE.
		mountConfiguration, err := applicationConfiguration.GetMountConfiguration()
		if err != nil {
			return err
		}
		mount, err := virtual_configuration.NewMountFromConfiguration(mountConfiguration)
		if err != nil {
			return util.StatusWrap(err, "Failed to create virtual file system mount")
		}
		if err := mount.Expose(dependenciesGroup, namespace, createdLeaf, sink); err != nil {
			return util.StatusWrap(err, "Failed to expose virtual file system mount")
		}

		// Web server for metrics and health checks.
		if listenAddress := applicationConfiguration.DiagnosticsHTTPListenAddress; listenAddress != "" {
			router := mux.NewRouter()
			router.Handle("/metrics", promhttp.Handler())
			router.HandleFunc("/-/healthy", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			server := &http.Server{
				Addr:    listenAddress,
				Handler: router,
			}
			siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				<-ctx.Done()
				return server.Close()
			})
			siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				if err := server.ListenAndServe(); err != http.ErrServerClosed {
					return util.StatusWrapf(err, "Failed to serve diagnostics on %#v", listenAddress)
				}
				return nil
			})
			log.Printf("Serving diagnostics on %#v", listenAddress)
		}

		<-ctx.Done()
		return nil
	})
}
