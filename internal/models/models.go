// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and relationships.
//
// The data model represents a turf (sports-field) booking platform where:
//   - Users browse Turfs and create Bookings for time slots
//   - Turf owners and admins approve or reject pending Bookings
//   - Users form Teams, exchange MatchInvitations, and play Matches
//   - Completed Matches feed the rating engine, which maintains each Team's
//     rating, tier, and win/loss/draw record
//   - Tournaments collect Team registrations up to a deadline
package models

import (
	"time"

	// uuid provides universally unique identifiers for primary keys.
	// Using UUIDs instead of auto-incrementing integers makes IDs safe to generate
	// client-side and avoids leaking record counts to end users.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety while keeping the values human-readable
// in the database.

// UserRole represents a user's global permission level across the entire platform.
type UserRole string

const (
	UserRoleAdmin UserRole = "admin" // Full access: manage users, turfs, bookings, everything
	UserRoleOwner UserRole = "owner" // Can register turfs and manage bookings on them
	UserRoleUser  UserRole = "user"  // Regular player: can book turfs, form teams, play matches
)

// TurfType describes the field format a turf supports.
type TurfType string

const (
	TurfTypeFiveASide   TurfType = "5-a-side"
	TurfTypeSevenASide  TurfType = "7-a-side"
	TurfTypeElevenASide TurfType = "11-a-side"
)

// BookingStatus tracks the lifecycle of a booking.
// A booking is created pending by the requester, moved to confirmed or rejected
// by the turf's owner (or an admin), and may be cancelled by the requester.
// Only bookings outside {cancelled, rejected} hold their time slot.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// MatchStatus tracks the lifecycle of a match between two teams.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed" // Scores are final; team ratings have been updated
	MatchStatusCancelled MatchStatus = "cancelled"
)

// InvitationStatus tracks a match invitation handshake.
// There is no further lifecycle: accepting or declining is terminal.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// TournamentStatus tracks the lifecycle of a tournament.
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusOngoing   TournamentStatus = "ongoing"
	TournamentStatusCompleted TournamentStatus = "completed"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

// Tier is a coarse rating bracket derived purely from a team's rating.
// It is recomputed from the new rating every time the rating changes and is
// never set independently. See the rating package for the thresholds.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: User -> users, Turf -> turfs, etc.

// User represents a registered person in the system.
// Users sign up with email and password; the password is stored as a bcrypt
// hash and never serialized (json:"-").
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // bcrypt hash; excluded from every JSON response
	FirstName    string    `gorm:"not null;default:''" json:"first_name"`
	LastName     string    `gorm:"not null;default:''" json:"last_name"`
	AvatarURL    *string   `json:"avatar_url"` // Optional profile picture URL; pointer means it can be NULL
	Role         UserRole  `gorm:"type:user_role;not null;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Turf is a bookable sports-field resource.
// OpenHour/CloseHour and SlotMinutes define the canonical grid of bookable
// slots for a day; the grid itself is computed on demand, never stored.
type Turf struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  *string   `json:"description"`
	Location     string    `gorm:"not null" json:"location"` // City/area label; also used for matchmaking locality
	Address      string    `gorm:"not null" json:"address"`
	TurfType     TurfType  `gorm:"type:turf_type;not null" json:"turf_type"`
	PricePerHour float64   `gorm:"type:decimal(10,2);not null" json:"price_per_hour"`
	OpenHour     int       `gorm:"not null;default:6" json:"open_hour"`   // First bookable hour of the day (24h clock)
	CloseHour    int       `gorm:"not null;default:23" json:"close_hour"` // No slot may extend past this hour
	SlotMinutes  int       `gorm:"not null;default:60" json:"slot_minutes"`
	ImageURL     *string   `json:"image_url"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`
	Owner        User      `gorm:"foreignKey:OwnerID" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Team is a named group of players with a rating and a match record.
// Rating, Tier, the W/L/D counters, and the goal tallies are mutated only as
// a side effect of a match transitioning into completed — exactly once per
// match, never otherwise.
type Team struct {
	ID                uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name              string       `gorm:"uniqueIndex;not null" json:"name"`
	CaptainID         uuid.UUID    `gorm:"type:uuid;not null" json:"captain_id"`
	Captain           User         `gorm:"foreignKey:CaptainID" json:"-"`
	Location          string       `gorm:"not null" json:"location"`
	PreferredTurfType *TurfType    `gorm:"type:turf_type" json:"preferred_turf_type"`
	LogoURL           *string      `json:"logo_url"`
	Rating            int          `gorm:"not null;default:1200" json:"rating"`
	Tier              Tier         `gorm:"type:team_tier;not null;default:'Silver'" json:"tier"`
	Wins              int          `gorm:"not null;default:0" json:"wins"`
	Losses            int          `gorm:"not null;default:0" json:"losses"`
	Draws             int          `gorm:"not null;default:0" json:"draws"`
	GoalsFor          int          `gorm:"not null;default:0" json:"goals_for"`
	GoalsAgainst      int          `gorm:"not null;default:0" json:"goals_against"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	Members           []TeamMember `gorm:"foreignKey:TeamID" json:"-"`
}

// TableName pins the table GORM targets for Turf. The default pluralizer
// treats "turf" as irregular and would produce "turves"; the schema uses
// "turfs".
func (Turf) TableName() string { return "turfs" }

// TeamMember links a User to a Team.
// The unique index (idx_team_user) ensures a user joins a team at most once.
type TeamMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_user" json:"team_id"`
	Team     Team      `gorm:"foreignKey:TeamID" json:"-"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_user" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Position *string   `json:"position"` // Optional playing position label, e.g. "goalkeeper"
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Booking reserves a [StartTime, EndTime) window on a turf for a date.
// Times are wall-clock "HH:MM" strings on a 24-hour scale; the interval is
// half-open, so a booking ending at 10:00 does not conflict with one starting
// at 10:00.
//
// Invariant: for a given (TurfID, Date), no two bookings whose status is
// outside {cancelled, rejected} may have overlapping intervals. The create
// handler enforces this with the availability check inside a transaction.
type Booking struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TurfID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_turf_date" json:"turf_id"`
	Turf       Turf          `gorm:"foreignKey:TurfID" json:"-"`
	UserID     uuid.UUID     `gorm:"type:uuid;not null" json:"user_id"`
	User       User          `gorm:"foreignKey:UserID" json:"-"`
	TeamID     *uuid.UUID    `gorm:"type:uuid" json:"team_id"` // Optional: the team this booking is for
	Team       *Team         `gorm:"foreignKey:TeamID" json:"-"`
	Date       string        `gorm:"type:date;not null;index:idx_bookings_turf_date" json:"date"` // "YYYY-MM-DD"
	StartTime  string        `gorm:"type:varchar(5);not null" json:"start_time"`                  // "HH:MM"
	EndTime    string        `gorm:"type:varchar(5);not null" json:"end_time"`                    // "HH:MM"
	Status     BookingStatus `gorm:"type:booking_status;not null;default:'pending'" json:"status"`
	TotalPrice float64       `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Notes      *string       `json:"notes"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Match is a game between two teams, optionally tied to a booking.
// Scores are nullable until reported. WinnerID stays nil on a draw.
//
// Invariant: the rating/tier/W-L-D/goal fields on both teams are updated
// exactly once, at the transition into status=completed, and never otherwise.
// The match handler guards that transition; see handlers.UpdateMatch.
type Match struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TeamAID    uuid.UUID   `gorm:"type:uuid;not null" json:"team_a_id"`
	TeamA      Team        `gorm:"foreignKey:TeamAID" json:"-"`
	TeamBID    uuid.UUID   `gorm:"type:uuid;not null" json:"team_b_id"`
	TeamB      Team        `gorm:"foreignKey:TeamBID" json:"-"`
	BookingID  *uuid.UUID  `gorm:"type:uuid" json:"booking_id"`
	TurfID     uuid.UUID   `gorm:"type:uuid;not null" json:"turf_id"`
	Turf       Turf        `gorm:"foreignKey:TurfID" json:"-"`
	Date       string      `gorm:"type:date;not null" json:"date"`
	Time       string      `gorm:"type:varchar(5);not null" json:"time"`
	TeamAScore *int        `json:"team_a_score"`
	TeamBScore *int        `json:"team_b_score"`
	Status     MatchStatus `gorm:"type:match_status;not null;default:'scheduled'" json:"status"`
	WinnerID   *uuid.UUID  `gorm:"type:uuid" json:"winner_id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// MatchInvitation is a challenge from one team to another.
// It is a plain request/response handshake; accepting it does not schedule
// a match automatically.
type MatchInvitation struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FromTeamID    uuid.UUID        `gorm:"type:uuid;not null" json:"from_team_id"`
	FromTeam      Team             `gorm:"foreignKey:FromTeamID" json:"-"`
	ToTeamID      uuid.UUID        `gorm:"type:uuid;not null" json:"to_team_id"`
	ToTeam        Team             `gorm:"foreignKey:ToTeamID" json:"-"`
	PreferredDate *string          `gorm:"type:date" json:"preferred_date"`
	PreferredTime *string          `gorm:"type:varchar(5)" json:"preferred_time"`
	TurfID        *uuid.UUID       `gorm:"type:uuid" json:"turf_id"`
	Message       *string          `json:"message"`
	Status        InvitationStatus `gorm:"type:invitation_status;not null;default:'pending'" json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Tournament is an organized competition teams can register for until the
// registration deadline, capped at MaxTeams.
type Tournament struct {
	ID                   uuid.UUID                `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                 string                   `gorm:"not null" json:"name"`
	Description          *string                  `json:"description"`
	OrganizerID          uuid.UUID                `gorm:"type:uuid;not null" json:"organizer_id"`
	Organizer            User                     `gorm:"foreignKey:OrganizerID" json:"-"`
	Location             string                   `gorm:"not null" json:"location"`
	TurfType             *TurfType                `gorm:"type:turf_type" json:"turf_type"`
	StartDate            string                   `gorm:"type:date;not null" json:"start_date"`
	EndDate              string                   `gorm:"type:date;not null" json:"end_date"`
	RegistrationDeadline string                   `gorm:"type:date;not null" json:"registration_deadline"`
	MaxTeams             int                      `gorm:"not null" json:"max_teams"`
	EntryFee             *float64                 `gorm:"type:decimal(10,2)" json:"entry_fee"`
	PrizeInfo            *string                  `json:"prize_info"`
	Status               TournamentStatus         `gorm:"type:tournament_status;not null;default:'upcoming'" json:"status"`
	ImageURL             *string                  `json:"image_url"`
	CreatedAt            time.Time                `json:"created_at"`
	UpdatedAt            time.Time                `json:"updated_at"`
	Registrations        []TournamentRegistration `gorm:"foreignKey:TournamentID" json:"-"`
}

// TournamentRegistration links a Team to a Tournament.
// The unique index (idx_tournament_team) prevents double registration.
type TournamentRegistration struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TournamentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_team" json:"tournament_id"`
	Tournament   Tournament `gorm:"foreignKey:TournamentID" json:"-"`
	TeamID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tournament_team" json:"team_id"`
	Team         Team       `gorm:"foreignKey:TeamID" json:"-"`
	RegisteredAt time.Time  `gorm:"autoCreateTime" json:"registered_at"`
}
