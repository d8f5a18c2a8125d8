package domain

import "time"

const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	ID   int
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
func (a Actor) IsAgent() bool { return a.Role == RoleAgent }

type User struct {
	ID                int       `db:"id"`
	Phone             string    `db:"phone"`
	Name              string    `db:"name"`
	PasswordHash      string    `db:"password_hash"`
	Role              string    `db:"role"`
	AgentPoints       int64     `db:"agent_points"`
	TotalTransactions int       `db:"total_transactions"`
	SuccessRate       float64   `db:"success_rate"`
	CreatedAt         time.Time `db:"created_at"`
}

// Order statuses. Terminal: StatusCompleted, StatusCancelled.
const (
	StatusPublished       = "niitlegdsen"
	StatusAgentResearch   = "agent_sudlaj_bn"
	StatusAwaitingPayment = "tolbor_huleej_bn"
	StatusCompleted       = "amjilttai_zahialga"
	StatusCancelled       = "tsutsalsan_zahialga"
)

func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

const (
	PaymentMethodBank = "bank"
	PaymentMethodCard = "card"
)

type Order struct {
	ID                  int          `db:"id"`
	OwnerID             int          `db:"owner_id"`
	AgentID             *int         `db:"agent_id"`
	ProductName         string       `db:"product_name"`
	Description         string       `db:"description"`
	ImageURLs           []string     `db:"image_urls"`
	Status              string       `db:"status"`
	PaymentMethod       string       `db:"payment_method"`
	UserPaymentVerified bool         `db:"user_payment_verified"`
	AgentPaymentPaid    bool         `db:"agent_payment_paid"`
	TrackCode           *string      `db:"track_code"`
	ArchivedByUser      bool         `db:"archived_by_user"`
	Report              *AgentReport `db:"-"`
	CreatedAt           time.Time    `db:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at"`
}

// Bundle report modes. Fixed once the first report is submitted.
const (
	ReportModeUnset   = ""
	ReportModeSingle  = "single"
	ReportModePerItem = "per_item"
)

type BundleOrder struct {
	ID                  int          `db:"id"`
	OwnerID             int          `db:"owner_id"`
	AgentID             *int         `db:"agent_id"`
	Status              string       `db:"status"`
	ReportMode          string       `db:"report_mode"`
	PaymentMethod       string       `db:"payment_method"`
	UserPaymentVerified bool         `db:"user_payment_verified"`
	AgentPaymentPaid    bool         `db:"agent_payment_paid"`
	TrackCode           *string      `db:"track_code"`
	ArchivedByUser      bool         `db:"archived_by_user"`
	BundleReport        *AgentReport `db:"-"`
	Items               []BundleItem `db:"-"`
	CreatedAt           time.Time    `db:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at"`
}

type BundleItem struct {
	ID          int          `db:"id"`
	BundleID    int          `db:"bundle_id"`
	Position    int          `db:"position"`
	ProductName string       `db:"product_name"`
	Description string       `db:"description"`
	ImageURLs   []string     `db:"image_urls"`
	Report      *AgentReport `db:"-"`
}

// AgentReport is the agent's quote for an order, a bundle priced as a whole,
// or a single bundle item. Exactly one of OrderID/BundleID/BundleItemID is set.
type AgentReport struct {
	ID                    int       `db:"id"`
	OrderID               *int      `db:"order_id"`
	BundleID              *int      `db:"bundle_id"`
	BundleItemID          *int      `db:"bundle_item_id"`
	UserAmount            int64     `db:"user_amount"` // yuan
	PaymentLink           string    `db:"payment_link"`
	AdditionalImages      []string  `db:"additional_images"`
	AdditionalDescription string    `db:"additional_description"`
	Quantity              int       `db:"quantity"`
	PayableYuan           float64   `db:"payable_yuan"`
	PayableMNT            int64     `db:"payable_mnt"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

// AdminSettings is a singleton record (id is always 1).
type AdminSettings struct {
	ID                int       `db:"id"`
	AccountNumber     string    `db:"account_number"`
	AccountName       string    `db:"account_name"`
	Bank              string    `db:"bank"`
	ExchangeRate      float64   `db:"exchange_rate"` // MNT per yuan
	OrderLimitEnabled bool      `db:"order_limit_enabled"`
	MaxOrdersPerDay   int       `db:"max_orders_per_day"`
	MaxActiveOrders   int       `db:"max_active_orders"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Card transaction types. Amounts are signed unit counts: grants and gifts
// received are positive, transfers sent and deductions are negative.
const (
	TxInitialGrant   = "initial_grant"
	TxAdminGift      = "admin_gift"
	TxAgentGift      = "agent_gift"
	TxUserTransfer   = "user_transfer"
	TxOrderDeduction = "order_deduction"
)

type CardTransaction struct {
	ID             int       `db:"id"`
	AccountID      int       `db:"account_id"`
	Type           string    `db:"type"`
	Amount         int64     `db:"amount"`
	RecipientPhone *string   `db:"recipient_phone"`
	OrderID        *int      `db:"order_id"`
	CreatedAt      time.Time `db:"created_at"`
}

const (
	RewardPending  = "pending"
	RewardApproved = "approved"
	RewardRejected = "rejected"
)

type RewardRequest struct {
	ID         int        `db:"id"`
	AgentID    int        `db:"agent_id"`
	Amount     int64      `db:"amount"` // MNT
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	ApprovedAt *time.Time `db:"approved_at"`
	RejectedAt *time.Time `db:"rejected_at"`
}
