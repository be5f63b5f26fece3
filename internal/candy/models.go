package candy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candy is the single persisted record of the service. The id is assigned
// once at create time and never changes afterwards.
type Candy struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Color string             `json:"color" bson:"color"`
}

// Input is the create body. Both fields are optional.
type Input struct {
	Name  string `json:"name" form:"name" binding:"max=200"`
	Color string `json:"color" form:"color" binding:"max=200"`
}

// Patch is the update body. Nil or empty fields leave the stored value alone.
type Patch struct {
	Name  *string `json:"name" form:"name" binding:"omitempty,max=200"`
	Color *string `json:"color" form:"color" binding:"omitempty,max=200"`
}

// Apply copies the supplied, non-empty fields of p onto c.
func (p Patch) Apply(c *Candy) {
	if p.Name != nil && *p.Name != "" {
		c.Name = *p.Name
	}
	if p.Color != nil && *p.Color != "" {
		c.Color = *p.Color
	}
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return (p.Name == nil || *p.Name == "") && (p.Color == nil || *p.Color == "")
}
