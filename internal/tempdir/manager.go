package tempdir

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/pathext/internal/pathvalue"
)

const temporaryDirectoryPermissionsConstant os.FileMode = 0o700

const (
	maximumCreateAttemptsConstant        = 100
	separatorInAffixTemplateConstant     = "%w: temporary directory %s %q contains a path separator"
	prefixAffixNameConstant              = "prefix"
	suffixAffixNameConstant              = "suffix"
	createDirectoryErrorTemplateConstant = "failed to create temporary directory %s: %w"
	collisionErrorTemplateConstant       = "%w after %d attempts in %s"
	removeDirectoryErrorTemplateConstant = "failed to remove temporary directory %s: %w"
	directoryCreatedMessageConstant      = "temporary directory created"
	directoryRemovedMessageConstant      = "temporary directory removed"
	directoryCollisionMessageConstant    = "temporary directory name already taken"
	logFieldPathConstant                 = "path"
	logFieldAttemptConstant              = "attempt"
	missingCallbackMessageConstant       = "temporary directory callback must be provided"
)

// ErrDirectoryCollision reports that every generated name was already taken.
var ErrDirectoryCollision = errors.New("unable to find an unused temporary directory name")

// NameGenerator yields the random token placed between prefix and suffix.
type NameGenerator func() string

// RootProvider yields the host temporary directory.
type RootProvider func() string

// Dependencies configures Manager collaborators. Nil members fall back to the host implementations.
type Dependencies struct {
	FileSystem    afero.Fs
	Logger        *zap.Logger
	NameGenerator NameGenerator
	RootProvider  RootProvider
}

// Options controls the name and location of a new temporary directory.
type Options struct {
	Prefix        string
	Suffix        string
	BaseDirectory string
}

// Manager creates and removes temporary directories.
type Manager struct {
	fileSystem    afero.Fs
	logger        *zap.Logger
	nameGenerator NameGenerator
	rootProvider  RootProvider
	flavor        *pathvalue.Flavor
}

// NewManager constructs a Manager, filling unset dependencies with host defaults.
func NewManager(dependencies Dependencies) *Manager {
	manager := &Manager{
		fileSystem:    dependencies.FileSystem,
		logger:        dependencies.Logger,
		nameGenerator: dependencies.NameGenerator,
		rootProvider:  dependencies.RootProvider,
		flavor:        pathvalue.DefaultFlavor(),
	}
	if manager.fileSystem == nil {
		manager.fileSystem = afero.NewOsFs()
	}
	if manager.logger == nil {
		manager.logger = zap.NewNop()
	}
	if manager.nameGenerator == nil {
		manager.nameGenerator = uuid.NewString
	}
	if manager.rootProvider == nil {
		manager.rootProvider = os.TempDir
	}
	return manager
}

// SystemTemporaryRoot returns the platform temporary directory as a path value.
func (manager *Manager) SystemTemporaryRoot() pathvalue.Path {
	return manager.flavor.Parse(manager.rootProvider())
}

// Create makes a new directory named prefix + random token + suffix below the
// base directory, or below the system temporary root when none is given.
// The directory is readable and writable only by the current user.
func (manager *Manager) Create(options Options) (*ScopedDirectory, error) {
	if manager.flavor.ContainsSeparator(options.Prefix) {
		return nil, fmt.Errorf(separatorInAffixTemplateConstant, pathvalue.ErrInvalidArgument, prefixAffixNameConstant, options.Prefix)
	}
	if manager.flavor.ContainsSeparator(options.Suffix) {
		return nil, fmt.Errorf(separatorInAffixTemplateConstant, pathvalue.ErrInvalidArgument, suffixAffixNameConstant, options.Suffix)
	}

	baseDirectory := manager.SystemTemporaryRoot()
	if len(options.BaseDirectory) > 0 {
		baseDirectory = manager.flavor.Parse(options.BaseDirectory)
	}

	for attempt := 1; attempt <= maximumCreateAttemptsConstant; attempt++ {
		candidate := baseDirectory.Join(options.Prefix + manager.nameGenerator() + options.Suffix)
		mkdirError := manager.fileSystem.Mkdir(candidate.String(), temporaryDirectoryPermissionsConstant)
		if mkdirError == nil {
			manager.logger.Debug(directoryCreatedMessageConstant, zap.String(logFieldPathConstant, candidate.String()))
			return &ScopedDirectory{manager: manager, path: candidate}, nil
		}
		if !errors.Is(mkdirError, os.ErrExist) {
			return nil, fmt.Errorf(createDirectoryErrorTemplateConstant, candidate.String(), mkdirError)
		}
		manager.logger.Debug(directoryCollisionMessageConstant, zap.String(logFieldPathConstant, candidate.String()), zap.Int(logFieldAttemptConstant, attempt))
	}

	return nil, fmt.Errorf(collisionErrorTemplateConstant, ErrDirectoryCollision, maximumCreateAttemptsConstant, baseDirectory.String())
}

// WithDirectory creates a temporary directory, hands it to callback and removes
// it afterwards. Removal happens on every exit path: normal return, callback
// error, context cancellation and panic, which is re-raised once the directory
// is gone. Callback and removal failures are combined into one error.
func (manager *Manager) WithDirectory(executionContext context.Context, options Options, callback func(context.Context, pathvalue.Path) error) (resultError error) {
	if callback == nil {
		return errors.New(missingCallbackMessageConstant)
	}
	if executionContext == nil {
		executionContext = context.Background()
	}

	scopedDirectory, createError := manager.Create(options)
	if createError != nil {
		return createError
	}

	defer func() {
		recovered := recover()
		closeError := scopedDirectory.Close()
		if recovered != nil {
			panic(recovered)
		}
		if closeError != nil {
			resultError = multierror.Append(resultError, closeError).ErrorOrNil()
		}
	}()

	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	return callback(executionContext, scopedDirectory.Path())
}

func (manager *Manager) remove(path pathvalue.Path) error {
	if removeError := manager.fileSystem.RemoveAll(path.String()); removeError != nil {
		return fmt.Errorf(removeDirectoryErrorTemplateConstant, path.String(), removeError)
	}
	manager.logger.Debug(directoryRemovedMessageConstant, zap.String(logFieldPathConstant, path.String()))
	return nil
}

// ScopedDirectory is a created temporary directory that must be closed.
type ScopedDirectory struct {
	manager    *Manager
	path       pathvalue.Path
	closeOnce  sync.Once
	closeError error
}

// Path reports the location of the directory.
func (directory *ScopedDirectory) Path() pathvalue.Path {
	return directory.path
}

// Close removes the directory and everything below it. Repeated calls return the first result.
func (directory *ScopedDirectory) Close() error {
	if directory == nil || directory.manager == nil {
		return nil
	}
	directory.closeOnce.Do(func() {
		directory.closeError = directory.manager.remove(directory.path)
	})
	return directory.closeError
}
