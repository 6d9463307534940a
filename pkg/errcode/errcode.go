package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	RemoteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Data sources file errors
	SourcesConfigError
	SourcesValidationError

	// Catalog errors
	CatalogNotInitializedError
	CatalogInitializedError
	CatalogReferenceFileError
	CatalogHeaderError
	CatalogMappingFileError
	CatalogDataSourceError
	CatalogAttrTypeError
	CatalogStoreError

	// Query errors
	QueryMissingFieldError
	QueryInvalidValueError

	// Plugin errors
	PluginMetadataError
	PluginDuplicateError
	PluginNoneError
	PluginPanicError

	// Synthesis errors
	SynthesisUnknownDataSourceError

	// Data file errors
	DataFileError
)
