package dynamo

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-otp-signup/internal/config"
	"github.com/go-otp-signup/internal/domain"
)

// Attribute names shared by both account tables.
const (
	attrEmail      = "email"
	attrAccountID  = "account_id"
	attrCollection = "collection"
)

// indexNewest partitions a table by collection and sorts by account_id.
// Account ids are ULIDs, so a descending query returns the newest accounts.
const indexNewest = "collection-account_id-index"

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// tableFor resolves the table backing a role's collection.
func tableFor(tables config.DynamoTables, role domain.Role) string {
	if role.Collection() == domain.RoleShopkeeper {
		return tables.Shopkeepers
	}
	return tables.Users
}
