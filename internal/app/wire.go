//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		repositorySet,
		usecaseSet,
		serviceSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server", "Lessons", "Content", "Catalog"),
	)
	return nil, nil, nil
}
