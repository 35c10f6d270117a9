package seeders

type userSeed struct {
	UserID     string
	Username   string
	Password   string
	Email      string
	FirstName  string
	LastName   string
	Role       string
	Department string
}

// Стартовый набор пользователей. Менеджеры (MGR*) дополнительно
// регистрируются в таблице managers, чтобы резолвер находил их сразу.
var usersData = []userSeed{
	{UserID: "MGR001", Username: "john.smith", Password: "manager123", Email: "john.smith@company.com", FirstName: "John", LastName: "Smith", Role: "MANAGER", Department: "Finance"},
	{UserID: "MGR002", Username: "sarah.johnson", Password: "manager123", Email: "sarah.johnson@company.com", FirstName: "Sarah", LastName: "Johnson", Role: "MANAGER", Department: "Operations"},
	{UserID: "MGR003", Username: "michael.chen", Password: "manager123", Email: "michael.chen@company.com", FirstName: "Michael", LastName: "Chen", Role: "MANAGER", Department: "Engineering"},
	{UserID: "MGR004", Username: "emma.williams", Password: "manager123", Email: "emma.williams@company.com", FirstName: "Emma", LastName: "Williams", Role: "MANAGER", Department: "Regional Manager"},
	{UserID: "MGR005", Username: "david.brown", Password: "manager123", Email: "david.brown@company.com", FirstName: "David", LastName: "Brown", Role: "MANAGER", Department: "IT"},
	{UserID: "USR001", Username: "alice.cooper", Password: "user123", Email: "alice.cooper@company.com", FirstName: "Alice", LastName: "Cooper", Role: "USER", Department: "Sales"},
	{UserID: "USR002", Username: "bob.martin", Password: "user123", Email: "bob.martin@company.com", FirstName: "Bob", LastName: "Martin", Role: "USER", Department: "Marketing"},
}
