package api

// Category is a fixed creature category.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int64  `json:"displayOrder"`
}

// Creature is one entry of a category's list.
type Creature struct {
	ID             int64   `json:"id"`
	CategoryID     int64   `json:"categoryId"`
	Name           string  `json:"name"`
	ScientificName *string `json:"scientificName,omitempty"`
	Memo           *string `json:"memo,omitempty"`
}

// Observation is a recorded sighting. RecordedAt is local time in the
// form 2006-01-02T15:04.
type Observation struct {
	ID         int64   `json:"id"`
	CreatureID int64   `json:"creatureId"`
	Count      int     `json:"count"`
	Memo       string  `json:"memo"`
	RecordedAt string  `json:"recordedAt"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// Preferences is the owner's settings record.
type Preferences struct {
	LastTabIndex int    `json:"lastTabIndex"`
	MapMode      string `json:"mapMode"`
}

// User is an account without credentials.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// --- CatalogService ---

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type ListCreaturesRequest struct {
	CategoryID int64 `json:"categoryId"`
}

type ListCreaturesResponse struct {
	Creatures []Creature `json:"creatures"`
}

type WatchCreaturesRequest struct {
	CategoryID int64 `json:"categoryId"`
}

type WatchCreaturesResponse struct {
	Creatures []Creature `json:"creatures"`
}

// BrowseRequest opens the list screen. A nil TabIndex restores the last
// selected tab; a set one selects it and stores it as the last tab.
type BrowseRequest struct {
	TabIndex *int `json:"tabIndex,omitempty"`
	EditMode bool `json:"editMode"`
}

// BrowseResponse is one snapshot of the list screen.
type BrowseResponse struct {
	TabIndex   int        `json:"tabIndex"`
	Category   Category   `json:"category"`
	Categories []Category `json:"categories"`
	EditMode   bool       `json:"editMode"`
	Creatures  []Creature `json:"creatures"`
}

type CreateCreatureRequest struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
	Memo       string `json:"memo"`
}

type CreateCreatureResponse struct {
	Creature Creature `json:"creature"`
}

type UpdateCreatureRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Memo string `json:"memo"`
}

type UpdateCreatureResponse struct{}

type DeleteCreatureRequest struct {
	ID int64 `json:"id"`
}

type DeleteCreatureResponse struct{}

// --- ObservationService ---

type ListObservationsRequest struct {
	CreatureID int64 `json:"creatureId"`
}

type ListObservationsResponse struct {
	Observations []Observation `json:"observations"`
}

type WatchObservationsRequest struct {
	CreatureID int64 `json:"creatureId"`
}

type WatchObservationsResponse struct {
	Observations []Observation `json:"observations"`
}

type DeleteObservationRequest struct {
	ID int64 `json:"id"`
}

type DeleteObservationResponse struct{}

// --- DraftService ---

// DraftError is a surfaced draft error. Kind is validation, persistence or
// permission.
type DraftError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// DraftState mirrors the map screen's draft.
type DraftState struct {
	ObservationID int64       `json:"observationId"`
	CreatureID    int64       `json:"creatureId"`
	CreatureName  string      `json:"creatureName"`
	CategoryID    int64       `json:"categoryId"`
	Count         int         `json:"count"`
	Memo          string      `json:"memo"`
	RecordedAt    string      `json:"recordedAt"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	Pinned        bool        `json:"pinned"`
	EditMode      bool        `json:"editMode"`
	MapMode       string      `json:"mapMode"`
	Error         *DraftError `json:"error,omitempty"`
}

// StartDraftRequest opens a draft session. Route, when set, is a map route
// such as "map/5/Heron/2?memo=x" and takes precedence over CreatureID.
// With only CreatureID the name and category are looked up.
type StartDraftRequest struct {
	Route      string `json:"route,omitempty"`
	CreatureID int64  `json:"creatureId,omitempty"`
}

// DraftRequest addresses a session for transitions without arguments.
type DraftRequest struct {
	SessionID string `json:"sessionId"`
}

// DraftResponse carries the session's state after a transition.
type DraftResponse struct {
	SessionID string     `json:"sessionId"`
	State     DraftState `json:"state"`
}

type SetLocationRequest struct {
	SessionID string  `json:"sessionId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SetCountRequest struct {
	SessionID string `json:"sessionId"`
	Delta     int    `json:"delta"`
}

type SetMemoRequest struct {
	SessionID string `json:"sessionId"`
	Memo      string `json:"memo"`
}

type SetDateRequest struct {
	SessionID string `json:"sessionId"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
}

type SetTimeRequest struct {
	SessionID string `json:"sessionId"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
}

type BeginEditRequest struct {
	SessionID     string `json:"sessionId"`
	ObservationID int64  `json:"observationId"`
}

type EndDraftResponse struct{}

// --- PreferencesService ---

type GetPreferencesRequest struct{}

type SelectTabRequest struct {
	Index int `json:"index"`
}

type SetMapModeRequest struct {
	MapMode string `json:"mapMode"`
}

type PreferencesResponse struct {
	Preferences Preferences `json:"preferences"`
}

// --- LocationService ---

type ReportLocationRequest struct {
	DeviceID  string  `json:"deviceId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ReportLocationResponse struct {
	Accepted bool `json:"accepted"`
}

type WatchLocationRequest struct {
	DeviceID string `json:"deviceId"`
}

// LocationUpdate is a device fix; At is RFC 3339.
type LocationUpdate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	At        string  `json:"at"`
}

// --- AuthService ---

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}
