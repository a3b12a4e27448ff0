package app

import (
	"github.com/vk/filepickgo/internal/registry"
	"github.com/vk/filepickgo/modules/camera"
	"github.com/vk/filepickgo/modules/gallery"
	"github.com/vk/filepickgo/modules/localfile"
	"github.com/vk/filepickgo/modules/voice"
	"github.com/vk/filepickgo/modules/weblink"
)

// coreModules is the definitive list of all source modules that are
// compiled into the filepickgo binary.
var coreModules = []registry.Module{
	&camera.Module{},
	&gallery.Module{},
	&voice.Module{},
	&weblink.Module{},
	&localfile.Module{},
}
