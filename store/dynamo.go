package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MaxBatchWriteItems is the BatchWriteItem request cap; PutAll splits larger writes.
const MaxBatchWriteItems = 25

const (
	attrID          = "id"
	attrValue       = "value"
	attrDiff        = "diff"
	attrDiffPercent = "diff_percent"
)

type DynamoConfig struct {
	TableName       string
	Region          string
	Endpoint        string
	AccessKeyId     string
	SecretAccessKey string
}

// DynamoAPI is the part of the DynamoDB client the store uses.
type DynamoAPI interface {
	dynamodb.ScanAPIClient
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

type dynamoRateStore struct {
	lg     *zap.Logger
	client DynamoAPI
	table  string
}

func NewDynamoRateStore(ctx context.Context, lg *zap.Logger, cfg *DynamoConfig) (RateStore, error) {
	if cfg.TableName == "" {
		return nil, ErrMissingTableName
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyId != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, ErrFailedToLoadConfig.WithCause(err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	lg.Info("dynamodb rate store ready",
		zap.String("table", cfg.TableName),
		zap.String("region", awsCfg.Region),
		zap.String("endpoint", cfg.Endpoint),
	)

	return NewDynamoRateStoreWithClient(lg, client, cfg.TableName), nil
}

func NewDynamoRateStoreWithClient(lg *zap.Logger, client DynamoAPI, table string) RateStore {
	return &dynamoRateStore{
		lg:     lg,
		client: client,
		table:  table,
	}
}

func (s *dynamoRateStore) Scan(ctx context.Context) ([]Record, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	var records []Record
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, ErrFailedToScan.WithCause(err).WithDetails(s.table)
		}
		pages++

		for _, item := range page.Items {
			record, err := unmarshalRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}

	s.lg.Debug("[DYNAMODB-SCAN]",
		zap.String("table", s.table),
		zap.Int("pages", pages),
		zap.Int("records", len(records)),
	)
	return records, nil
}

func (s *dynamoRateStore) PutAll(ctx context.Context, records []Record) error {
	for i, batch := range lo.Chunk(records, MaxBatchWriteItems) {
		requests := lo.Map(batch, func(r Record, _ int) types.WriteRequest {
			return types.WriteRequest{PutRequest: &types.PutRequest{Item: marshalRecord(r)}}
		})

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table: requests},
		})
		if err != nil {
			return ErrFailedToBatchWrite.WithCause(err).WithDetails(fmt.Sprintf("batch %d", i))
		}
		if unprocessed := len(out.UnprocessedItems[s.table]); unprocessed > 0 {
			return ErrUnprocessedItems.WithDetails(unprocessed)
		}

		s.lg.Debug("[DYNAMODB-BATCH-WRITE]",
			zap.String("table", s.table),
			zap.Int("batch", i),
			zap.Int("items", len(requests)),
		)
	}
	return nil
}

func marshalRecord(r Record) map[string]types.AttributeValue {
	if r.IsMetadata() {
		return map[string]types.AttributeValue{
			attrID:    &types.AttributeValueMemberS{Value: r.ID},
			attrValue: &types.AttributeValueMemberS{Value: r.Text},
		}
	}
	return map[string]types.AttributeValue{
		attrID:          &types.AttributeValueMemberS{Value: r.ID},
		attrValue:       &types.AttributeValueMemberN{Value: r.Value.String()},
		attrDiff:        &types.AttributeValueMemberN{Value: r.Diff.String()},
		attrDiffPercent: &types.AttributeValueMemberN{Value: r.DiffPercent.String()},
	}
}

func unmarshalRecord(item map[string]types.AttributeValue) (Record, error) {
	id, ok := item[attrID].(*types.AttributeValueMemberS)
	if !ok {
		return Record{}, ErrInvalidItem.WithDetails("missing id")
	}

	record := Record{ID: id.Value}
	switch v := item[attrValue].(type) {
	case *types.AttributeValueMemberS:
		if !record.IsMetadata() {
			return Record{}, ErrInvalidItem.WithDetails(fmt.Sprintf("%s: string value on rate record", record.ID))
		}
		record.Text = v.Value
	case *types.AttributeValueMemberN:
		if err := parseNumber(v, &record.Value); err != nil {
			return Record{}, ErrInvalidItem.WithCause(err).WithDetails(record.ID)
		}
	}

	if v, ok := item[attrDiff].(*types.AttributeValueMemberN); ok {
		if err := parseNumber(v, &record.Diff); err != nil {
			return Record{}, ErrInvalidItem.WithCause(err).WithDetails(record.ID)
		}
	}
	if v, ok := item[attrDiffPercent].(*types.AttributeValueMemberN); ok {
		if err := parseNumber(v, &record.DiffPercent); err != nil {
			return Record{}, ErrInvalidItem.WithCause(err).WithDetails(record.ID)
		}
	}
	return record, nil
}

func parseNumber(v *types.AttributeValueMemberN, dst *decimal.Decimal) error {
	d, err := decimal.NewFromString(v.Value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
