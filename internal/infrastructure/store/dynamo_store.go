package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoStore keeps slots in a DynamoDB table keyed by slot_key
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoSlot represents the DynamoDB item structure
type dynamoSlot struct {
	Key       string `dynamodbav:"slot_key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func NewDynamoStore(client *dynamodb.Client, tableName string) *DynamoStore {
	return &DynamoStore{
		client:    client,
		tableName: tableName,
	}
}

// Get retrieves a slot; a missing item is reported as ok=false
func (ds *DynamoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	result, err := ds.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.tableName),
		Key: map[string]types.AttributeValue{
			"slot_key": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get slot: %w", err)
	}

	if result.Item == nil {
		return nil, false, nil
	}

	var item dynamoSlot
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal slot: %w", err)
	}
	return []byte(item.Value), true, nil
}

// Set overwrites a slot (no condition, last writer wins)
func (ds *DynamoStore) Set(ctx context.Context, key string, value []byte) error {
	item := dynamoSlot{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal slot: %w", err)
	}

	_, err = ds.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ds.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put slot: %w", err)
	}
	return nil
}
