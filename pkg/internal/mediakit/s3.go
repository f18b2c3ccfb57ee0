package mediakit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type S3Uploader struct {
	client *s3.S3
	bucket string
}

func NewS3Uploader() (*S3Uploader, error) {
	awsConfig := &aws.Config{
		Region: aws.String(viper.GetString("media.region")),
		Credentials: credentials.NewStaticCredentials(
			viper.GetString("media.access_key"),
			viper.GetString("media.secret_key"),
			"",
		),
	}

	// Custom endpoints cover MinIO and other S3-compatible stores.
	if endpoint := viper.GetString("media.endpoint"); len(endpoint) > 0 {
		awsConfig.Endpoint = aws.String(endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if !viper.GetBool("media.use_ssl") {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create aws session: %v", err)
	}

	return &S3Uploader{
		client: s3.New(sess),
		bucket: viper.GetString("media.bucket"),
	}, nil
}

func (u *S3Uploader) Upload(data []byte, filename string, contentType string) (string, error) {
	key := fmt.Sprintf("%s_%s", uuid.New().String(), filename)

	_, err := u.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload media: %v", err)
	}

	endpoint := aws.StringValue(u.client.Config.Endpoint)
	if len(endpoint) > 0 && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if u.client.Config.DisableSSL != nil && *u.client.Config.DisableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, u.bucket, key), nil
	}

	region := aws.StringValue(u.client.Config.Region)
	if len(region) == 0 {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, region, key), nil
}

func (u *S3Uploader) Delete(url string) error {
	key := u.keyFromURL(url)
	if len(key) == 0 {
		return fmt.Errorf("unable to extract object key from url %q", url)
	}

	_, err := u.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("unable to delete media: %v", err)
	}
	return nil
}

func (u *S3Uploader) keyFromURL(url string) string {
	marker := "/" + u.bucket + "/"
	if idx := strings.Index(url, marker); idx >= 0 {
		return url[idx+len(marker):]
	}
	if idx := strings.Index(url, ".amazonaws.com/"); idx >= 0 {
		return url[idx+len(".amazonaws.com/"):]
	}
	return ""
}
