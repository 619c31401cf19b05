package postgres

import "time"

// UserModel é o model GORM para usuários (tutores)
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// PetModel é o model GORM para pets
type PetModel struct {
	ID              uint       `gorm:"primaryKey"`
	Nome            string     `gorm:"type:varchar(255);not null"`
	Especie         string     `gorm:"type:varchar(255);not null;index"`
	Raca            *string    `gorm:"type:varchar(255)"`
	Genero          *string    `gorm:"type:varchar(20);index"`
	DataNascimento  *time.Time `gorm:"type:date"`
	Peso            *float64   `gorm:"type:decimal(5,2)"`
	NumeroMicrochip *string    `gorm:"type:varchar(255);uniqueIndex"`
	Observacoes     *string    `gorm:"type:text"`
	TutorID         *uint      `gorm:"index"`
	Tutor           *UserModel `gorm:"foreignKey:TutorID;constraint:OnDelete:SET NULL"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
	DeletedAt       *time.Time `gorm:"index"` // Soft delete
}

func (PetModel) TableName() string {
	return "pets"
}

// AccessTokenModel é o model GORM para tokens de acesso
type AccessTokenModel struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenID   string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	Name      string     `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time  `gorm:"not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (AccessTokenModel) TableName() string {
	return "personal_access_tokens"
}

// Models retorna todos os models na ordem de criação das tabelas
func Models() []any {
	return []any{
		&UserModel{},
		&PetModel{},
		&AccessTokenModel{},
	}
}
