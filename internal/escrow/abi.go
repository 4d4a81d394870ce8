package escrow

// Lifecycle surface of the BoostChain escrow contract. Only the functions,
// events and errors the coordinator touches are included; the full contract
// carries additional owner/treasury management entries.
const escrowABI = `[
  {"inputs":[{"internalType":"uint256","name":"_totalAmount","type":"uint256"},{"internalType":"uint256","name":"_deadline","type":"uint256"},{"internalType":"string","name":"_gameType","type":"string"},{"internalType":"string","name":"_gameMode","type":"string"},{"internalType":"string","name":"_requirements","type":"string"}],"name":"createOrder","outputs":[],"stateMutability":"payable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"_orderId","type":"uint256"}],"name":"acceptOrder","outputs":[],"stateMutability":"payable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"_orderId","type":"uint256"}],"name":"confirmOrder","outputs":[],"stateMutability":"payable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"_orderId","type":"uint256"}],"name":"completeOrder","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"_orderId","type":"uint256"}],"name":"cancelOrder","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"_totalAmount","type":"uint256"}],"name":"calculateDeposit","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"depositRate","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":true,"internalType":"address","name":"player","type":"address"},{"indexed":false,"internalType":"uint256","name":"totalAmount","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"playerDeposit","type":"uint256"},{"indexed":false,"internalType":"string","name":"gameType","type":"string"},{"indexed":false,"internalType":"string","name":"gameMode","type":"string"}],"name":"OrderCreated","type":"event"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":true,"internalType":"address","name":"booster","type":"address"},{"indexed":false,"internalType":"uint256","name":"boosterDeposit","type":"uint256"}],"name":"OrderAccepted","type":"event"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":true,"internalType":"address","name":"childContract","type":"address"},{"indexed":false,"internalType":"uint256","name":"totalAmountLocked","type":"uint256"}],"name":"OrderConfirmed","type":"event"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"platformFee","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"boosterReward","type":"uint256"},{"indexed":false,"internalType":"bytes32","name":"currentTxHash","type":"bytes32"}],"name":"OrderCompleted","type":"event"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"playerRefund","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"penaltyToPlayer","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"penaltyToPlatform","type":"uint256"},{"indexed":false,"internalType":"bytes32","name":"currentTxHash","type":"bytes32"}],"name":"OrderFailed","type":"event"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":true,"internalType":"address","name":"cancelledBy","type":"address"},{"indexed":false,"internalType":"uint256","name":"penaltyAmount","type":"uint256"},{"indexed":false,"internalType":"address","name":"penaltyReceiver","type":"address"}],"name":"OrderCancelled","type":"event"},
  {"inputs":[],"name":"EnforcedPause","type":"error"},
  {"inputs":[],"name":"ExpectedPause","type":"error"},
  {"inputs":[],"name":"ReentrancyGuardReentrantCall","type":"error"},
  {"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"OwnableUnauthorizedAccount","type":"error"}
]`
