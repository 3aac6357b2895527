package entity

// CreateUserRequest - запрос на регистрацию пользователя (идемпотентный)
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Photo      string `json:"photo" validate:"omitempty,url"`
	Membership string `json:"membership" validate:"omitempty,oneof=unverified verified"`
}

// UpdateUserRoleRequest - смена роли пользователя (только admin)
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin moderator"`
}

// UpdateMembershipRequest - смена membership после оплаты
type UpdateMembershipRequest struct {
	Membership string `json:"membership" validate:"required,oneof=unverified verified"`
}

// CreateProductRequest - запрос на добавление продукта
// Владелец не принимается из тела: email берется из токена
type CreateProductRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Image        string `json:"image" validate:"omitempty,url"`
	Description  string `json:"description" validate:"omitempty,max=5000"`
	ExternalLink string `json:"externalLink" validate:"omitempty,url"`
	Tags         []Tag  `json:"tags" validate:"omitempty,dive"`
	OwnerName    string `json:"ownerName" validate:"omitempty"`
	OwnerImage   string `json:"ownerImage" validate:"omitempty"`
}

// UpdateProductRequest - частичное обновление продукта.
// Перечислены только разрешенные поля: статус, голоса и счетчик жалоб
// через этот путь менять нельзя
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Image        *string `json:"image" validate:"omitempty,url"`
	Description  *string `json:"description" validate:"omitempty,max=5000"`
	ExternalLink *string `json:"externalLink" validate:"omitempty,url"`
	Tags         []Tag   `json:"tags" validate:"omitempty,dive"`
}

// UpdateStatusRequest - решение модератора
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Rejected"`
}

// VoteRequest - голос за продукт
type VoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateReviewRequest - запрос на создание отзыва
type CreateReviewRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Description   string `json:"description" validate:"required,min=1,max=2000"`
	ReviewerName  string `json:"reviewerName" validate:"required"`
	ReviewerEmail string `json:"reviewerEmail" validate:"omitempty,email"`
	ReviewerImage string `json:"reviewerImage" validate:"omitempty"`
}

// CreateCouponRequest - запрос на создание промокода
type CreateCouponRequest struct {
	CouponCode      string `json:"couponCode" validate:"required,min=1,max=50"`
	DiscountPercent int    `json:"discountPercent" validate:"required,min=1,max=100"`
	Description     string `json:"description" validate:"omitempty,max=500"`
	ExpiryDate      string `json:"expiryDate" validate:"omitempty"`
}

// UpdateCouponRequest - частичное обновление промокода
type UpdateCouponRequest struct {
	CouponCode      *string `json:"couponCode" validate:"omitempty,min=1,max=50"`
	DiscountPercent *int    `json:"discountPercent" validate:"omitempty,min=1,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
	ExpiryDate      *string `json:"expiryDate" validate:"omitempty"`
}

// CreatePaymentIntentRequest - запрос клиентского секрета Stripe
type CreatePaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// PaymentIntentResponse - ответ с клиентским секретом
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// TokenResponse - выданный JWT токен
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateUserResponse - результат идемпотентной регистрации.
// InsertedID равен nil если пользователь с таким email уже существует
type CreateUserResponse struct {
	Message    string      `json:"message,omitempty"`
	InsertedID interface{} `json:"insertedId"`
}

// DiscountResponse - процент скидки по промокоду
type DiscountResponse struct {
	DiscountPercent int `json:"discountPercent"`
}

// CountResponse - количество продуктов под текущим фильтром поиска
type CountResponse struct {
	Count int64 `json:"count"`
}

// StatisticsResponse - обертка аналитики для админской панели
type StatisticsResponse struct {
	Analytics Statistics `json:"analytics"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ProductListResponse - ответ со списком продуктов
type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// UserListResponse - ответ со списком пользователей
type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// CouponListResponse - ответ со списком промокодов
type CouponListResponse struct {
	Coupons []Coupon `json:"coupons"`
	Total   int      `json:"total"`
}
