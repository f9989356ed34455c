package services

import "github.com/Daud2712/E-Commerce-sub000/internal/domain"

// Operation names every mutating or role-gated entry point. Role checks
// run through one table instead of ad hoc comparisons in each handler;
// ownership predicates stay with the service that holds the record.
type Operation string

const (
	OpCheckout            Operation = "order.checkout"
	OpOrderView           Operation = "order.view"
	OpOrderListBuyer      Operation = "order.list.buyer"
	OpOrderListSeller     Operation = "order.list.seller"
	OpOrderUpdateStatus   Operation = "order.update_status"
	OpOrderCancel         Operation = "order.cancel"
	OpOrderConfirmReceipt Operation = "order.confirm_receipt"

	OpProductCreate   Operation = "product.create"
	OpProductUpdate   Operation = "product.update"
	OpProductDelete   Operation = "product.delete"
	OpProductListMine Operation = "product.list.mine"

	OpDeliveryCreate       Operation = "delivery.create"
	OpDeliveryDelete       Operation = "delivery.delete"
	OpDeliveryAssign       Operation = "delivery.assign"
	OpDeliveryAccept       Operation = "delivery.accept"
	OpDeliveryReject       Operation = "delivery.reject"
	OpDeliveryUpdateStatus Operation = "delivery.update_status"
	OpDeliveryReceive      Operation = "delivery.receive"
	OpDeliveryUnreceive    Operation = "delivery.unreceive"
	OpDeliveryListSeller   Operation = "delivery.list.seller"
	OpDeliveryListBuyer    Operation = "delivery.list.buyer"
	OpDeliveryListRider    Operation = "delivery.list.rider"

	OpPaymentInitiate Operation = "payment.initiate"

	OpExpenseManage Operation = "expense.manage"
	OpReportView    Operation = "report.view"

	OpUserList    Operation = "user.list"
	OpUserApprove Operation = "user.approve"
)

type policyEntry struct {
	roles        []domain.Role
	needApproved bool
}

var policy = map[Operation]policyEntry{
	OpCheckout:            {roles: []domain.Role{domain.RoleBuyer}},
	OpOrderView:           {roles: []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin}},
	OpOrderListBuyer:      {roles: []domain.Role{domain.RoleBuyer}},
	OpOrderListSeller:     {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpOrderUpdateStatus:   {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpOrderCancel:         {roles: []domain.Role{domain.RoleBuyer}},
	OpOrderConfirmReceipt: {roles: []domain.Role{domain.RoleBuyer}},

	OpProductCreate:   {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpProductUpdate:   {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpProductDelete:   {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpProductListMine: {roles: []domain.Role{domain.RoleSeller}},

	OpDeliveryCreate:       {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpDeliveryDelete:       {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpDeliveryAssign:       {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpDeliveryAccept:       {roles: []domain.Role{domain.RoleRider}, needApproved: true},
	OpDeliveryReject:       {roles: []domain.Role{domain.RoleRider}, needApproved: true},
	OpDeliveryUpdateStatus: {roles: []domain.Role{domain.RoleRider}, needApproved: true},
	OpDeliveryReceive:      {roles: []domain.Role{domain.RoleBuyer}},
	OpDeliveryUnreceive:    {roles: []domain.Role{domain.RoleBuyer}},
	OpDeliveryListSeller:   {roles: []domain.Role{domain.RoleSeller}},
	OpDeliveryListBuyer:    {roles: []domain.Role{domain.RoleBuyer}},
	OpDeliveryListRider:    {roles: []domain.Role{domain.RoleRider}},

	OpPaymentInitiate: {roles: []domain.Role{domain.RoleBuyer}},

	OpExpenseManage: {roles: []domain.Role{domain.RoleSeller}, needApproved: true},
	OpReportView:    {roles: []domain.Role{domain.RoleSeller}, needApproved: true},

	OpUserList:    {roles: []domain.Role{domain.RoleAdmin}},
	OpUserApprove: {roles: []domain.Role{domain.RoleAdmin}},
}

// Authorize checks the (operation, role) pair against the policy table.
// It runs before any mutation; a denial has zero side effects.
func Authorize(op Operation, actor domain.Actor) error {
	p, ok := policy[op]
	if !ok {
		return domain.ErrForbidden
	}
	for _, r := range p.roles {
		if r == actor.Role {
			if p.needApproved && !actor.Approved {
				return domain.ErrForbidden
			}
			return nil
		}
	}
	return domain.ErrForbidden
}
