package label

import "strings"

// Record 描述一张产品标签的九个文本字段。
// 所有字段均为普通字符串，空字符串合法，渲染为空白（不会出现占位符）。
type Record struct {
	ProductName    string `json:"productName"`
	ProductModel   string `json:"productModel"`
	ProductionYear string `json:"productionYear"`
	QCStatus       string `json:"qcStatus"`
	QCDate         string `json:"qcDate"`
	CompanyName    string `json:"companyName"`
	Website        string `json:"website"`
	Address        string `json:"address"`
	Email          string `json:"email"`
}

// Default 返回编辑器启动时的默认标签内容。
func Default() Record {
	return Record{
		ProductName:    "AR内容工作站",
		ProductModel:   "EZAE1",
		ProductionYear: "2025",
		QCStatus:       "已检验",
		QCDate:         "2025.05",
		CompanyName:    "杭州易现先进科技有限公司",
		Website:        "https://www.ezxr.com/",
		Address:        "浙江省杭州市萧山区天人大厦3101室",
		Email:          "pm@service.ezxr.com",
	}
}

// FileStem 返回下载文件名的主干：优先使用产品型号，型号为空时回退为 "label"。
func (r Record) FileStem() string {
	if stem := strings.TrimSpace(r.ProductModel); stem != "" {
		return stem
	}
	return "label"
}

// Set 按 JSON 字段名写入单个字段，未知字段返回 false。
func (r *Record) Set(field, value string) bool {
	p := r.field(field)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Get 按 JSON 字段名读取单个字段。
func (r Record) Get(field string) (string, bool) {
	p := r.field(field)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Fields 以固定顺序列出全部字段名。
func Fields() []string {
	return []string{
		"productName", "productModel", "productionYear",
		"qcStatus", "qcDate",
		"companyName", "website", "address", "email",
	}
}

func (r *Record) field(name string) *string {
	switch name {
	case "productName":
		return &r.ProductName
	case "productModel":
		return &r.ProductModel
	case "productionYear":
		return &r.ProductionYear
	case "qcStatus":
		return &r.QCStatus
	case "qcDate":
		return &r.QCDate
	case "companyName":
		return &r.CompanyName
	case "website":
		return &r.Website
	case "address":
		return &r.Address
	case "email":
		return &r.Email
	default:
		return nil
	}
}
