package repositories

// Registry groups every repository so the storage driver can be swapped as a unit
type Registry struct {
	Schools      SchoolRepository
	Users        UserRepository
	Students     StudentRepository
	Enrollments  EnrollmentRepository
	Pathways     PathwayRepository
	Modules      ModuleRepository
	Alerts       AlertRepository
	Events       EventRepository
	Transactions TransactionRepository
	Compliance   ComplianceRepository
}
