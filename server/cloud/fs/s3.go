// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/SoftbearStudios/cgp/pattern"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Published patterns change rarely but should not be stale for long.
const patternSecondsCache = 60

type S3Filesystem struct {
	svc            *s3.S3
	patternsBucket string
}

func NewS3Filesystem(session *session.Session, stage string) (*S3Filesystem, error) {
	s3Filesystem := &S3Filesystem{svc: s3.New(session)}

	s3Filesystem.patternsBucket = "cgp-" + stage + "-patterns"

	return s3Filesystem, nil
}

func patternKey(name string) string {
	return "patterns/" + name + pattern.FileExtension
}

func (s3Filesystem *S3Filesystem) UploadPattern(name string, data []byte) error {
	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.patternsBucket),
		Key:          aws.String(patternKey(name)),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", patternSecondsCache)),
		ContentType:  aws.String("text/plain; charset=utf-8"),
	})
	return req.Send()
}

func (s3Filesystem *S3Filesystem) DownloadPattern(name string) ([]byte, error) {
	output, err := s3Filesystem.svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s3Filesystem.patternsBucket),
		Key:    aws.String(patternKey(name)),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, nil
		}
		return nil, err
	}
	defer output.Body.Close()

	// Anything longer fails to parse anyway
	return io.ReadAll(io.LimitReader(output.Body, int64(pattern.MaxFileSize+1)))
}
