package model

// Doctor receives new-booking emails. Rows are added with the CLI.

type Doctor struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name" validate:"required"`
	Department string `db:"department" json:"department" validate:"required"`
	Email      string `db:"email" json:"email" validate:"required,email"`
}
