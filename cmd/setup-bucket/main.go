package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"

	"tasktrack/infrastructure/storage"
	"tasktrack/pkg/config"
)

// setup-bucket creates the attachment bucket and checks the access key can
// write, sign and delete objects in it. Attachments are private, only signed
// URLs reach them.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	s3 := cfg.Storage.S3

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("  Attachment bucket setup")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("\nEndpoint: %s\n", s3.Endpoint)
	fmt.Printf("Bucket: %s\n", s3.Bucket)
	fmt.Printf("Region: %s\n", s3.Region)

	client, err := storage.NewMinioClient(storage.S3StorageConfig{
		Endpoint:  s3.Endpoint,
		AccessKey: s3.AccessKey,
		SecretKey: s3.SecretKey,
		Bucket:    s3.Bucket,
		UseSSL:    s3.UseSSL,
		Region:    s3.Region,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	exists, err := client.BucketExists(ctx, s3.Bucket)
	if err != nil {
		log.Fatalf("Failed to check bucket: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, s3.Bucket, minio.MakeBucketOptions{Region: s3.Region}); err != nil {
			log.Fatalf("Failed to create bucket '%s': %v", s3.Bucket, err)
		}
		fmt.Printf("\n✓ Bucket '%s' created\n", s3.Bucket)
	} else {
		fmt.Printf("\n✓ Bucket '%s' exists\n", s3.Bucket)
	}

	// an empty policy removes anonymous access
	if err := client.SetBucketPolicy(ctx, s3.Bucket, ""); err != nil {
		log.Printf("⚠️  Warning: failed to reset bucket policy: %v", err)
	} else {
		fmt.Println("✓ Bucket is private")
	}

	fmt.Println("\n--- Testing Basic Operations ---")
	const testKey = "setup-check/upload-test.txt"
	testContent := []byte("tasktrack attachment permission check")

	fmt.Print("Testing PutObject... ")
	_, err = client.PutObject(ctx, s3.Bucket, testKey,
		bytes.NewReader(testContent), int64(len(testContent)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		log.Fatalf("❌ Failed: %v", err)
	}
	fmt.Println("✓ OK")

	fmt.Print("Testing PresignedGetObject... ")
	signed, err := client.PresignedGetObject(ctx, s3.Bucket, testKey, 5*time.Minute, nil)
	if err != nil {
		fmt.Printf("❌ Failed: %v\n", err)
	} else {
		resp, err := http.Get(signed.String())
		if err != nil {
			fmt.Printf("⚠️  signed URL not reachable: %v\n", err)
		} else {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Println("✓ OK")
			} else {
				fmt.Printf("⚠️  signed URL returned %d\n", resp.StatusCode)
			}
		}
	}

	fmt.Print("Testing RemoveObject... ")
	if err := client.RemoveObject(ctx, s3.Bucket, testKey, minio.RemoveObjectOptions{}); err != nil {
		fmt.Printf("❌ Failed: %v\n", err)
	} else {
		fmt.Println("✓ OK")
	}

	fmt.Println("\n═══════════════════════════════════════════════════════════════")
	fmt.Println("  Setup Complete!")
	fmt.Println("═══════════════════════════════════════════════════════════════")
}
