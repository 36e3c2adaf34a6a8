package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"type:varchar(16);default:user"`
}
