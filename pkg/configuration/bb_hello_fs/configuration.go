package configuration

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/buildbarn/bb-hello-writeback/pkg/filesystem/hello"
	virtual_configuration "github.com/buildbarn/bb-hello-writeback/pkg/filesystem/virtual/configuration"
	"github.com/buildbarn/bb-storage/pkg/filesystem/path"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/go-playground/validator/v10"
	"github.com/google/go-jsonnet"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultFSName is the name under which the file system is
	// mounted, if no other name is provided.
	DefaultFSName = "hello"
	// DefaultWritebackDirectoryPath is the directory in which data
	// written into the file system is stored, if no other path is
	// provided.
	DefaultWritebackDirectoryPath = "/mnt-nvme2/writeback"
	// DefaultWritebackFileName is the name of the file in the
	// write-back directory in which data is stored, if no other
	// name is provided.
	DefaultWritebackFileName = "abc"
)

// ApplicationConfiguration of bb_hello_fs. Fields that are not provided
// in the configuration file are set to their default values.
type ApplicationConfiguration struct {
	MountPath   string `json:"mountPath" validate:"required"`
	FSName      string `json:"fsName" validate:"required,excludesall=0x2C"`
	AutoUnmount bool   `json:"autoUnmount"`
	AllowRoot   bool   `json:"allowRoot"`
	AllowOther  bool   `json:"allowOther"`
	DirectMount bool   `json:"directMount"`
	Debug       bool   `json:"debug"`

	// Durations are specified in the format accepted by
	// time.ParseDuration(), such as "1s" or "500ms".
	EntryValidity     string `json:"entryValidity" validate:"required"`
	AttributeValidity string `json:"attributeValidity" validate:"required"`

	FileName     string  `json:"fileName" validate:"required"`
	FileContents *string `json:"fileContents"`
	OwnerUserID  *uint32 `json:"ownerUserId"`
	OwnerGroupID *uint32 `json:"ownerGroupId"`

	WritebackDirectoryPath string `json:"writebackDirectoryPath" validate:"required"`
	WritebackFileName      string `json:"writebackFileName" validate:"required,excludesall=/"`

	DiagnosticsHTTPListenAddress                     string `json:"diagnosticsHttpListenAddress" validate:"omitempty,hostname_port"`
	InHeaderAuthenticationMetadataJmespathExpression string `json:"inHeaderAuthenticationMetadataJmespathExpression"`
}

var validate = validator.New()

// GetApplicationConfiguration reads the configuration from a Jsonnet
// file and fills in default values. Environment variables are made
// available to the configuration file through std.extVar(). If no
// path is provided, a configuration containing only default values is
// returned.
//
// The configuration is not validated, as the caller may still
// override some of its fields. Call Validate() afterwards.
func GetApplicationConfiguration(path string) (*ApplicationConfiguration, error) {
	var applicationConfiguration ApplicationConfiguration
	if path != "" {
		if err := unmarshalConfigurationFromFile(path, &applicationConfiguration); err != nil {
			return nil, util.StatusWrap(err, "Failed to retrieve configuration")
		}
	}
	setDefaultApplicationValues(&applicationConfiguration)
	return &applicationConfiguration, nil
}

func unmarshalConfigurationFromFile(path string, applicationConfiguration *ApplicationConfiguration) error {
	vm := jsonnet.MakeVM()
	for _, environmentVariable := range os.Environ() {
		if key, value, ok := strings.Cut(environmentVariable, "="); ok {
			vm.ExtVar(key, value)
		}
	}
	configurationJSON, err := vm.EvaluateFile(path)
	if err != nil {
		return util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to evaluate configuration file")
	}

	decoder := json.NewDecoder(strings.NewReader(configurationJSON))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(applicationConfiguration); err != nil {
		return util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to unmarshal configuration")
	}
	return nil
}

func setDefaultApplicationValues(applicationConfiguration *ApplicationConfiguration) {
	if applicationConfiguration.FSName == "" {
		applicationConfiguration.FSName = DefaultFSName
	}
	if applicationConfiguration.EntryValidity == "" {
		applicationConfiguration.EntryValidity = hello.DefaultValidity.String()
	}
	if applicationConfiguration.AttributeValidity == "" {
		applicationConfiguration.AttributeValidity = hello.DefaultValidity.String()
	}
	if applicationConfiguration.FileName == "" {
		applicationConfiguration.FileName = hello.DefaultFileName
	}
	if applicationConfiguration.FileContents == nil {
		fileContents := hello.DefaultFileContents
		applicationConfiguration.FileContents = &fileContents
	}
	if applicationConfiguration.OwnerUserID == nil {
		ownerUserID := hello.DefaultOwnerUserID
		applicationConfiguration.OwnerUserID = &ownerUserID
	}
	if applicationConfiguration.OwnerGroupID == nil {
		ownerGroupID := hello.DefaultOwnerGroupID
		applicationConfiguration.OwnerGroupID = &ownerGroupID
	}
	if applicationConfiguration.WritebackDirectoryPath == "" {
		applicationConfiguration.WritebackDirectoryPath = DefaultWritebackDirectoryPath
	}
	if applicationConfiguration.WritebackFileName == "" {
		applicationConfiguration.WritebackFileName = DefaultWritebackFileName
	}
}

// Validate the configuration. This should be called after all fields
// have been set.
func (c *ApplicationConfiguration) Validate() error {
	if err := validate.Struct(c); err != nil {
		return util.StatusWrapWithCode(err, codes.InvalidArgument, "Invalid configuration")
	}
	if _, ok := path.NewComponent(c.FileName); !ok {
		return status.Errorf(codes.InvalidArgument, "Invalid configuration: File name %#v is not a valid filename", c.FileName)
	}
	if _, err := parseValidity(c.EntryValidity); err != nil {
		return util.StatusWrap(err, "Invalid configuration: Invalid entry validity")
	}
	if _, err := parseValidity(c.AttributeValidity); err != nil {
		return util.StatusWrap(err, "Invalid configuration: Invalid attribute validity")
	}
	return nil
}

func parseValidity(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, err.Error())
	}
	if d < 0 {
		return 0, status.Errorf(codes.InvalidArgument, "Duration %s is negative", d)
	}
	return d, nil
}

// GetMountConfiguration converts the options pertaining to the FUSE
// mount to the format used by NewMountFromConfiguration().
func (c *ApplicationConfiguration) GetMountConfiguration() (*virtual_configuration.MountConfiguration, error) {
	entryValidity, err := parseValidity(c.EntryValidity)
	if err != nil {
		return nil, util.StatusWrap(err, "Invalid entry validity")
	}
	attributeValidity, err := parseValidity(c.AttributeValidity)
	if err != nil {
		return nil, util.StatusWrap(err, "Invalid attribute validity")
	}
	return &virtual_configuration.MountConfiguration{
		MountPath:         c.MountPath,
		FSName:            c.FSName,
		AutoUnmount:       c.AutoUnmount,
		AllowRoot:         c.AllowRoot,
		AllowOther:        c.AllowOther,
		DirectMount:       c.DirectMount,
		Debug:             c.Debug,
		EntryValidity:     entryValidity,
		AttributeValidity: attributeValidity,
		InHeaderAuthenticationMetadataJmespathExpression: c.InHeaderAuthenticationMetadataJmespathExpression,
	}, nil
}

// GetHelloOptions converts the options pertaining to the contents of
// the file system to the format used by hello.NewNamespace().
func (c *ApplicationConfiguration) GetHelloOptions() (*hello.Options, error) {
	fileName, ok := path.NewComponent(c.FileName)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "File name %#v is not a valid filename", c.FileName)
	}
	return &hello.Options{
		FileName:     fileName,
		FileContents: []byte(*c.FileContents),
		OwnerUserID:  *c.OwnerUserID,
		OwnerGroupID: *c.OwnerGroupID,
	}, nil
}
