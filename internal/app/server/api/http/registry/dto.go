package registry

import (
	"mgtboard/internal/domain/registry"
)

type registerInput struct {
	Body registry.RegistryInfo
}

type clientOutput struct {
	Body *registry.Client
}

type clientsInput struct {
	BoxUUID string `path:"box_uuid" doc:"Box UUID"`
}

type clientsOutput struct {
	Body []registry.Client
}

type migrateInput struct {
	BoxUUID string `path:"box_uuid" doc:"Box UUID"`
	Body    registry.BoxMigrationInfo
}

type migrateOutput struct {
	Body *registry.BoxMigrationResult
}
