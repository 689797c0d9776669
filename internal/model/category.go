package model

// Category 分类（树形，ParentID 为空表示顶级）
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:512" json:"description"`
	ParentID    *int64 `gorm:"index" json:"parentId,omitempty"`
	SortOrder   int    `gorm:"default:0" json:"sortOrder"`

	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// FlatCategory 下拉框用的扁平化条目，Depth 用于缩进展示
type FlatCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Depth int    `json:"depth"`
}
