package entities

import "time"

// User - учетная запись сотрудника. Пароль хранится и сравнивается
// как есть (унаследованный контракт логина, безопасность вне скоупа);
// наружу он не сериализуется никогда.
type User struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	Username   string    `db:"username" json:"username"`
	Email      string    `db:"email" json:"email"`
	Password   string    `db:"password" json:"-"`
	FirstName  string    `db:"first_name" json:"firstName"`
	LastName   string    `db:"last_name" json:"lastName"`
	Role       string    `db:"role" json:"role"`
	Department string    `db:"department" json:"department"`
	IsActive   bool      `db:"is_active" json:"isActive"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
