package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	appConfig "github.com/tejas4149/EstateHub-backend/internal/config"
	"github.com/tejas4149/EstateHub-backend/internal/database"
	"github.com/tejas4149/EstateHub-backend/internal/models"
	"github.com/tejas4149/EstateHub-backend/internal/policy"
	"github.com/tejas4149/EstateHub-backend/pkg/logger"
	"github.com/tejas4149/EstateHub-backend/pkg/utils"
)

func getS3Client() (*s3.Client, error) {
	cfg := appConfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// UploadPropertyImages uploads multipart image files for a listing and appends
// their public URLs to the property's image list
func UploadPropertyImages(c *gin.Context) {
	var property models.Property
	if err := database.DB.First(&property, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Property not found"})
		return
	}

	actor := currentActor(c)
	if decision := policy.CanAct(actor, policy.ActionUpdateProperty, &property); !decision.Allowed {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Not authorized to update this property"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		files = form.File["image"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No image files found"})
		return
	}

	client, err := getS3Client()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to init storage client")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to init storage client"})
		return
	}

	cfg := appConfig.AppConfig
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to read uploaded file"})
			return
		}

		ext := filepath.Ext(header.Filename)
		key := fmt.Sprintf("properties/%s/%s%s", property.ID, utils.GenerateID(), ext)

		_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(cfg.R2BucketName),
			Key:         aws.String(key),
			Body:        file,
			ContentType: aws.String(header.Header.Get("Content-Type")),
		})
		file.Close()

		if err != nil {
			logger.Error().Err(err).Str("property_id", property.ID).Msg("Image upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Upload failed"})
			return
		}

		property.Images = append(property.Images, fmt.Sprintf("%s/%s", cfg.R2PublicURL, key))
	}

	if err := database.DB.Model(&property).Update("images", property.Images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save image references"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": property})
}
