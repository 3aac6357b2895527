package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Роли пользователей. Совпадение роли проверяется строго:
// admin не проходит проверку на moderator и наоборот.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// Статусы membership. Unverified владелец может иметь не больше одного продукта.
const (
	MembershipUnverified = "unverified"
	MembershipVerified   = "verified"
)

// Статусы модерации продукта
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// User - запись в каталоге пользователей, ключом служит email
type User struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Photo      string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Role       string             `json:"role,omitempty" bson:"role,omitempty"`
	Membership string             `json:"membership,omitempty" bson:"membership,omitempty"`
}

// Tag - тег продукта, по полю text работает поиск
type Tag struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
}

// ProductOwner - данные владельца, проставляются при создании из JWT
type ProductOwner struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}

// Product - продукт, отправленный на модерацию
// Инвариант: len(VotedBy) == Votes при любой последовательности голосований
type Product struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Image        string             `json:"image,omitempty" bson:"image,omitempty"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	ExternalLink string             `json:"externalLink,omitempty" bson:"externalLink,omitempty"`
	Tags         []Tag              `json:"tags,omitempty" bson:"tags,omitempty"`
	ProductOwner ProductOwner       `json:"productOwner" bson:"productOwner"`
	Status       string             `json:"status" bson:"status"`
	Votes        int                `json:"votes" bson:"votes"`
	VotedBy      []string           `json:"votedBy,omitempty" bson:"votedBy,omitempty"`
	Reported     *int               `json:"reported,omitempty" bson:"reported,omitempty"`
	Featured     bool               `json:"featured,omitempty" bson:"featured,omitempty"`
	// Unix-время в миллисекундах, проставляется сервером при вставке
	Timestamp int64 `json:"timestamp" bson:"timestamp"`
}

// Reviewer - автор отзыва
type Reviewer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}

// Review - отзыв на продукт. ProductID не проверяется на существование:
// при удалении продукта отзывы остаются (поведение исходной системы)
type Review struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID   string             `json:"productId" bson:"productId"`
	Rating      int                `json:"rating" bson:"rating"`
	Description string             `json:"description" bson:"description"`
	Reviewer    Reviewer           `json:"reviewer" bson:"reviewer"`
	Timestamp   int64              `json:"timestamp" bson:"timestamp"`
}

// Coupon - промокод на скидку при покупке membership
type Coupon struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CouponCode      string             `json:"couponCode" bson:"couponCode"`
	DiscountPercent int                `json:"discountPercent" bson:"discountPercent"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	ExpiryDate      string             `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
}

// Statistics - сводные счетчики для админской панели
type Statistics struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalProducts int64 `json:"totalProducts"`
	TotalReviews  int64 `json:"totalReviews"`
}

// ProductEvent - событие жизненного цикла продукта для Kafka
// EventType: PRODUCT_CREATED, PRODUCT_STATUS_UPDATED, REVIEW_CREATED
type ProductEvent struct {
	EventType  string `json:"event_type"`
	ProductID  string `json:"product_id"`
	OwnerEmail string `json:"owner_email,omitempty"`
	Status     string `json:"status,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}
