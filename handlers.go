package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"milkreg/pkg/export"
	"milkreg/pkg/ledger"
	"milkreg/pkg/ocr"
)

func setupRoutes(r *gin.Engine, store *ledger.Store) {
	r.POST("/login", loginHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.POST("/register-scan", registerScanHandler(store))
	authGroup.POST("/report", reportHandler(store))
	authGroup.POST("/report/export/csv", exportHandler(store, "csv"))
	authGroup.POST("/report/export/xlsx", exportHandler(store, "xlsx"))
	authGroup.POST("/report/export/pdf", exportHandler(store, "pdf"))
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		c.Set("username", username)
		c.Next()
	}
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Authenticate(req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": req.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString})
}

// reportRequest is the shared body for /report and the export endpoints:
// raw OCR text plus billing inputs, for callers that run their own OCR.
type reportRequest struct {
	Text     string   `json:"text"`
	Rate     int64    `json:"rate"`
	Extra    int64    `json:"extra_charges"`
	Override *float64 `json:"override_liters"`
	Customer string   `json:"customer"`
	Month    string   `json:"month"`
}

func (req *reportRequest) billingInput() ledger.BillingInput {
	rate := req.Rate
	if rate <= 0 {
		rate = defaultRate()
	}
	return ledger.BillingInput{RatePerLitre: rate, ExtraCharges: req.Extra, Override: req.Override}
}

func defaultRate() int64 {
	if v := os.Getenv("RATE_PER_LITRE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return 70
}

// reportHandler builds a bill from caller-supplied OCR text.
func reportHandler(store *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bill := ledger.BuildReport(req.Text, store.Current(), req.billingInput())
		resp := gin.H{"bill": bill}
		if !bill.Recognized {
			resp["warning"] = "no entries recognized; retry with a clearer photo or enter liters manually"
		}
		c.JSON(http.StatusOK, resp)
	}
}

// registerScanHandler accepts a register photo upload, runs OCR and responds
// with the computed bill. OCR failure degrades to an empty report with a
// warning instead of an error; the caller still gets a valid bill shape.
func registerScanHandler(store *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
			return
		}
		if file.Size > 5*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
			return
		}
		base := uploadBaseDir()
		if err := os.MkdirAll(base, 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
			return
		}
		fullPath := filepath.Join(base, filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, fullPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
			return
		}

		var warning string
		text, err := ocr.ExtractText(fullPath)
		if err != nil {
			text = ""
			warning = "ocr unavailable; report built from empty text"
		}

		req := reportRequest{
			Rate:     parseFormInt(c.PostForm("rate")),
			Extra:    parseFormInt(c.PostForm("extra_charges")),
			Customer: c.PostForm("customer"),
			Month:    c.PostForm("month"),
		}
		if v := c.PostForm("override_liters"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				req.Override = &f
			}
		}
		bill := ledger.BuildReport(text, store.Current(), req.billingInput())
		resp := gin.H{"bill": bill, "ocr_text": text}
		if warning == "" && !bill.Recognized {
			warning = "no entries recognized; retry with a clearer photo or enter liters manually"
		}
		if warning != "" {
			resp["warning"] = warning
		}
		c.JSON(http.StatusOK, resp)
	}
}

// exportHandler builds the bill and responds with a downloadable artifact.
func exportHandler(store *ledger.Store, format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		bill := ledger.BuildReport(req.Text, store.Current(), req.billingInput())
		meta := export.Meta{
			Customer: req.Customer,
			Month:    req.Month,
			Supplier: os.Getenv("SUPPLIER_NAME"),
			Location: os.Getenv("SUPPLIER_LOCATION"),
		}

		var (
			data []byte
			ct   string
			err  error
		)
		switch format {
		case "csv":
			data, err = export.CSV(bill)
			ct = "text/csv"
		case "xlsx":
			data, err = export.XLSX(bill, meta)
			ct = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "pdf":
			data, err = export.PDF(bill, meta)
			ct = "application/pdf"
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="bill.`+format+`"`)
		c.Data(http.StatusOK, ct, data)
	}
}

func parseFormInt(v string) int64 {
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}

// uploadBaseDir returns the base directory for uploaded photos (configurable via UPLOAD_BASE env)
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
