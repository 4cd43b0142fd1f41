//go:build s3example
// +build s3example

// This file provides an example S3-backed fetcher. It is excluded from
// regular builds because it requires the AWS SDK.
//
// To use this in your project, copy this file and add the AWS SDK:
//   go get github.com/aws/aws-sdk-go-v2
//   go get github.com/aws/aws-sdk-go-v2/config
//   go get github.com/aws/aws-sdk-go-v2/service/s3

package resource

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Fetcher returns a Fetcher that loads an object from the bucket, keyed
// by object key. Wire it to a keyed resource whose source yields the
// current object key:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	client := s3.NewFromConfig(cfg)
//
//	doc := resource.NewKeyed(
//	    func() (string, bool) { k := selectedKey.Get(); return k, k != "" },
//	    resource.S3Fetcher(client, "my-bucket"),
//	)
//
// Each source change starts a fresh download; a download superseded by a
// newer key never overwrites the resource's value.
func S3Fetcher(client *s3.Client, bucket string) Fetcher[string, []byte] {
	return func(key string, info Info[[]byte]) *Task[[]byte] {
		return Go(func() ([]byte, error) {
			out, err := client.GetObject(context.Background(), &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return nil, err
			}
			defer out.Body.Close()
			return io.ReadAll(out.Body)
		})
	}
}
