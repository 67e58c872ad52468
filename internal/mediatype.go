package internal

import (
	"path/filepath"
	"strings"
)

// MediaType is the coarse file kind derived from the extension alone.
type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeAudio    MediaType = "audio"
	MediaTypeDocument MediaType = "document"
	MediaTypeOther    MediaType = "other"
)

// MediaCategory is the top-level destination bucket a file belongs to.
type MediaCategory string

const (
	CategoryPhotosVideos MediaCategory = "photos_and_videos"
	CategoryMusic        MediaCategory = "music"
	CategoryDocuments    MediaCategory = "documents"
	CategoryOther        MediaCategory = "other"
)

// Label returns the human-readable category name.
func (c MediaCategory) Label() string {
	switch c {
	case CategoryPhotosVideos:
		return "Fotos y Videos"
	case CategoryMusic:
		return "Música"
	case CategoryDocuments:
		return "Documentos"
	default:
		return "Otros"
	}
}

// FolderName returns the filesystem-safe directory name for the category.
func (c MediaCategory) FolderName() string {
	switch c {
	case CategoryPhotosVideos:
		return "Fotos_y_Videos"
	case CategoryMusic:
		return "Musica"
	case CategoryDocuments:
		return "Documentos"
	default:
		return "Otros"
	}
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tiff": true, ".tif": true, ".heic": true,
	".heif": true, ".raw": true, ".cr2": true, ".nef": true,
	".arw": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".m4v": true, ".mkv": true,
	".avi": true, ".wmv": true, ".mpg": true, ".mpeg": true,
	".3gp": true, ".webm": true, ".mts": true, ".m2ts": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".aac": true, ".flac": true, ".wav": true,
	".ogg": true, ".oga": true, ".m4a": true, ".wma": true,
	".aiff": true, ".aif": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".ppt": true,
	".pptx": true, ".xls": true, ".xlsx": true, ".txt": true,
	".rtf": true, ".odt": true, ".ods": true, ".odp": true,
}

// DetectMediaType classifies a path by its lowercased extension.
func DetectMediaType(path string) MediaType {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExtensions[ext]:
		return MediaTypeImage
	case videoExtensions[ext]:
		return MediaTypeVideo
	case audioExtensions[ext]:
		return MediaTypeAudio
	case documentExtensions[ext]:
		return MediaTypeDocument
	default:
		return MediaTypeOther
	}
}

// ResolveCategory maps a media type to its destination category.
func ResolveCategory(t MediaType) MediaCategory {
	switch t {
	case MediaTypeImage, MediaTypeVideo:
		return CategoryPhotosVideos
	case MediaTypeAudio:
		return CategoryMusic
	case MediaTypeDocument:
		return CategoryDocuments
	default:
		return CategoryOther
	}
}
