package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleAdmin    = "ADMIN"
	RoleGraduate = "GRADUATE"
)

// ============================================================
// Auth tables
// ============================================================

// User represents usuarios table
type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Email              string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password           string         `gorm:"size:255;not null" json:"-"`
	Role               string         `gorm:"size:20;default:'GRADUATE'" json:"rol"`
	MustChangePassword bool           `gorm:"default:false" json:"mustChangePassword"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "usuarios"
}

// UserResponse DTO
type UserResponse struct {
	ID                 uint      `json:"id"`
	Email              string    `json:"email"`
	Role               string    `json:"rol"`
	MustChangePassword bool      `json:"mustChangePassword"`
	EgresadoID         uint      `json:"egresadoId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Role:               u.Role,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Alumni tables
// ============================================================

// Graduate represents egresados table.
// Each graduate is linked 1:1 to its login User; both rows are
// created together in one transaction.
type Graduate struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Nombres    string       `gorm:"size:100;not null" json:"nombres"`
	Apellidos  string       `gorm:"size:100;not null" json:"apellidos"`
	DNI        string       `gorm:"column:dni;uniqueIndex;size:8;not null" json:"dni"`
	Email      string       `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Telefono   string       `gorm:"size:20" json:"telefono,omitempty"`
	Linkedin   string       `gorm:"size:255" json:"linkedin,omitempty"`
	Carrera    string       `gorm:"size:100;not null" json:"carrera"`
	AnioEgreso int          `gorm:"not null" json:"anioEgreso"`
	UsuarioID  uint         `gorm:"uniqueIndex;not null" json:"usuarioId"`
	Usuario    User         `gorm:"foreignKey:UsuarioID" json:"-"`
	Empleos    []Employment `gorm:"foreignKey:EgresadoID;constraint:OnDelete:CASCADE" json:"empleos,omitempty"`
	CreatedAt  time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Graduate) TableName() string {
	return "egresados"
}

// Employment represents empleos table.
// At most one row per graduate carries Actual=true.
type Employment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Empresa     string     `gorm:"size:100;not null" json:"empresa"`
	Cargo       string     `gorm:"size:100;not null" json:"cargo"`
	Sector      string     `gorm:"size:50;not null" json:"sector"`
	FechaInicio time.Time  `gorm:"not null" json:"fechaInicio"`
	FechaFin    *time.Time `json:"fechaFin,omitempty"`
	Salario     *float64   `gorm:"type:decimal(10,2)" json:"salario,omitempty"`
	Actual      bool       `gorm:"default:false;index" json:"actual"`
	EgresadoID  uint       `gorm:"index;not null" json:"egresadoId"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Employment) TableName() string {
	return "empleos"
}

// ============================================================
// Dashboard tables (counted by /api/stats)
// ============================================================

// Survey represents encuestas table
type Survey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Titulo    string    `gorm:"size:200;not null" json:"titulo"`
	Activa    bool      `gorm:"default:true;index" json:"activa"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Survey) TableName() string {
	return "encuestas"
}

// Event represents eventos table
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Titulo    string    `gorm:"size:200;not null" json:"titulo"`
	Fecha     time.Time `gorm:"not null;index" json:"fecha"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Event) TableName() string {
	return "eventos"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Graduate{},
		&Employment{},
		&Survey{},
		&Event{},
	)
}
