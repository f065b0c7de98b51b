package app

// Store is the full persistence surface used by the services. Every
// storage backend implements it.
type Store interface {
	FacilitatorRepository
	EventRepository
	AgeGroupRepository
	ParticipantRepository
	MaterialRepository
	AttendanceRepository
	AllocationRepository
	ProjectionReader
	UserRepository
}
